// Package debugger is an interactive terminal front end for execute mode.
//
// The screen has three views: the most recent executed instructions, the
// register file and a status line. Keys: s or space steps one instruction,
// r runs to the end of the program, Ctrl-C quits.
package debugger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"

	"sim86/console"
	"sim86/cpu"
	"sim86/system"
)

// view names
const (
	disassemblyView = "disassembly"
	registersView   = "registers"
	statusView      = "status"
)

// how many executed instructions stay on screen
const historySize = 256

// Debugger steps a booted system
type Debugger struct {
	sys     *system.System
	history *History
	status  console.Console
}

// New returns a debugger for a system that already has a program loaded
func New(sys *system.System) *Debugger {
	return &Debugger{sys: sys, history: NewHistory(historySize)}
}

// Step executes a single instruction and returns the status message
func (d *Debugger) Step() string {
	c := d.sys.CPU
	if c.Halted() {
		return d.haltMessage()
	}

	before := c.Snapshot()
	in, err := c.Step()
	if err != nil {
		return d.haltMessage()
	}
	d.history.Add(fmt.Sprintf("%05x  %s", in.Address, d.sys.TraceLine(in, before)))
	if c.Halted() {
		return d.haltMessage()
	}

	next, err := c.Fetch()
	if err != nil {
		return fmt.Sprintf("next: %v", err)
	}
	if !c.Executable(next.Op) {
		return fmt.Sprintf("next: %05x  %s (not executable)", next.Address, next)
	}
	return fmt.Sprintf("next: %05x  %s", next.Address, next)
}

// RunToHalt steps until the cpu stops
func (d *Debugger) RunToHalt() string {
	msg := d.haltMessage()
	for !d.sys.CPU.Halted() {
		msg = d.Step()
	}
	return msg
}

func (d *Debugger) haltMessage() string {
	c := d.sys.CPU
	switch c.State {
	case cpu.HaltedNormal:
		return fmt.Sprintf("halted after %d instructions", c.Steps())
	case cpu.HaltedError:
		return fmt.Sprintf("halted: %v", c.Err)
	}
	return c.State.String()
}

// Listing returns the executed instructions, oldest first
func (d *Debugger) Listing() string {
	return strings.Join(d.history.Lines(), "\n")
}

// Run starts the gocui main loop and blocks until the user quits
func (d *Debugger) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()

	g.SetManagerFunc(layout)
	d.status = console.NewGui(g, statusView)

	bindings := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, quit},
		{'q', quit},
		{'s', d.stepHandler},
		{gocui.KeySpace, d.stepHandler},
		{'r', d.runHandler},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}

	// first draw happens once the views exist
	g.Update(func(g *gocui.Gui) error {
		return d.redraw(g, fmt.Sprintf("%s loaded, %d bytes", d.sys.Name(), d.sys.Memory.Len()))
	})

	if err := g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (d *Debugger) stepHandler(g *gocui.Gui, _ *gocui.View) error {
	return d.redraw(g, d.Step())
}

func (d *Debugger) runHandler(g *gocui.Gui, _ *gocui.View) error {
	return d.redraw(g, d.RunToHalt())
}

// redraw refreshes the listing and register views and logs msg to the status view
func (d *Debugger) redraw(g *gocui.Gui, msg string) error {
	v, err := g.View(disassemblyView)
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprint(v, d.Listing())

	v, err = g.View(registersView)
	if err != nil {
		return err
	}
	v.Clear()
	fmt.Fprint(v, d.sys.CPU.DumpRegisters())

	return d.status.WriteConsole(msg + "\n")
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// left -> executed instructions
	if v, err := g.SetView(disassemblyView, 0, 0, maxX-32, maxY-8); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Instructions"
		v.Autoscroll = true
	}

	// right -> register values
	if v, err := g.SetView(registersView, maxX-31, 0, maxX-1, maxY-8); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	// down -> status
	if v, err := g.SetView(statusView, 0, maxY-7, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status (s: step, r: run, q: quit)"
		v.Autoscroll = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
