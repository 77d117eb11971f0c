// Package console groups the output sinks of the simulator.
//
// Disassembly listings, execution traces and register dumps are written
// through a Console, so the same run can print to stdout or to a view of
// the interactive debugger.
package console

// Console receives program output
type Console interface {
	// WriteConsole displays a string on the console
	WriteConsole(msg string) error
}
