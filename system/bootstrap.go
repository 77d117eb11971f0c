package system

import (
	"fmt"
	"io"
	"os"
)

/*
	Program loading -> copy the image to address 0, reset the cpu.
*/

// Boot loads a program image read from r and prepares a fresh run
func (sys *System) Boot(name string, r io.Reader) error {
	n, err := sys.Memory.Load(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmptyProgram)
	}
	sys.name = name
	sys.CPU.Reset()
	sys.CPU.MaxSteps = sys.config.MaxSteps
	return nil
}

// BootFile loads the machine code file at path
func (sys *System) BootFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sys.Boot(path, f)
}
