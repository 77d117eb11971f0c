package console

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

// Gui console writes into a gocui view. It must only be used from
// the gocui main loop (keybinding handlers or Update callbacks).
type Gui struct {
	g    *gocui.Gui
	view string
}

// NewGui returns a console writing to the named view
func NewGui(g *gocui.Gui, view string) *Gui {
	return &Gui{g: g, view: view}
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	v, err := c.g.View(c.view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(v, msg)
	return err
}
