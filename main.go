package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"sim86/console"
	"sim86/debugger"
	"sim86/logger"
	"sim86/system"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	var (
		execute   bool
		tui       bool
		traceRegs bool
		maxSteps  int
		logPath   string
	)

	flagSet := flag.NewFlagSet("sim86", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.BoolVar(&execute, "execute", false, "Execute the program instead of disassembling it")
	flagSet.BoolVar(&tui, "tui", false, "Step through the program in an interactive debugger")
	flagSet.BoolVar(&traceRegs, "trace-regs", true, "Show register changes of executed instructions")
	flagSet.IntVar(&maxSteps, "max-steps", 1_000_000, "Stop execution after this many instructions (0: no limit)")
	flagSet.StringVar(&logPath, "log", "", "Write diagnostics to this file instead of stderr")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: sim86 [-execute | -tui] [flags] <8086 machine code file> ...")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	files := flagSet.Args()
	if len(files) == 0 {
		flagSet.Usage()
		return 2
	}

	log, closer, err := logger.New(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	config := system.Config{
		Execute:        execute || tui,
		TraceRegisters: traceRegs,
		MaxSteps:       maxSteps,
	}
	sys := system.InitializeSystem(console.NewWriter(stdout), log, config)

	if tui {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -tui needs a terminal")
			return 1
		}
		if len(files) != 1 {
			fmt.Fprintln(os.Stderr, "Error: -tui takes exactly one file")
			return 2
		}
		if err := sys.BootFile(files[0]); err != nil {
			log.Printf("%v", err)
			return 1
		}
		if err := debugger.New(sys).Run(); err != nil {
			log.Printf("debugger: %v", err)
			return 1
		}
		return 0
	}

	if err := sys.Run(files); err != nil {
		return 1
	}
	return 0
}
