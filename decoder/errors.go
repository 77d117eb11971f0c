package decoder

import (
	"errors"
	"fmt"
)

// decode failures
var (
	// ErrUnrecognizedOpcode -> no instruction family matches the first byte
	ErrUnrecognizedOpcode = errors.New("unrecognized opcode")

	// ErrTruncatedInstruction -> the instruction would read past the loaded program
	ErrTruncatedInstruction = errors.New("instruction extends past end of program")
)

// Error describes a failed decode
type Error struct {
	Address uint32
	Opcode  byte
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode: %v: opcode %08b at %#05x", e.Err, e.Opcode, e.Address)
}

func (e *Error) Unwrap() error {
	return e.Err
}
