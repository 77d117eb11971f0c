package cpu

import (
	"fmt"
	"math"

	"sim86/decoder"
	"sim86/instruction"
)

// cpu should be able to fetch, decode and execute:

// Fetch decodes the instruction at IP. Nothing is modified.
func (c *CPU) Fetch() (instruction.Instruction, error) {
	return decoder.Decode(c.mem, uint32(c.IP))
}

// Step runs one instruction through the state machine:
// Fetching -> Decoded -> Applying -> Fetching, or one of the halted states.
// State is never changed by an instruction that fails to decode or cannot execute.
func (c *CPU) Step() (instruction.Instruction, error) {
	if c.Halted() {
		return instruction.Instruction{}, ErrHalted
	}
	c.State = Fetching

	if c.MaxSteps > 0 && c.steps >= c.MaxSteps {
		return instruction.Instruction{}, c.fail(ErrStepLimit)
	}

	in, err := c.Fetch()
	if err != nil {
		return in, c.fail(err)
	}
	c.State = Decoded

	opcode, ok := c.opcodes[in.Op]
	if !ok {
		return in, c.fail(fmt.Errorf("%w: %s at %#05x", ErrNotExecutable, in, in.Address))
	}

	// IP is 16 bits wide, program bytes past 64KB cannot be reached
	end := uint32(c.IP) + uint32(in.Size)
	if end > math.MaxUint16 && c.mem.Contains(end) {
		return in, c.fail(fmt.Errorf("%w: %s at %#05x", ErrSegmentOverflow, in, in.Address))
	}

	// relative branches count from the next instruction
	ip := c.IP
	c.IP += uint16(in.Size)
	c.State = Applying
	if err := opcode(in); err != nil {
		c.IP = ip
		return in, c.fail(err)
	}
	c.steps++

	fellOff := end > math.MaxUint16 && c.IP == uint16(end)
	if fellOff || !c.mem.Contains(uint32(c.IP)) {
		c.State = HaltedNormal
	} else {
		c.State = Fetching
	}
	return in, nil
}

// Run executes until the CPU halts. onStep, if not nil, is called after
// every applied instruction with the register state from before it.
func (c *CPU) Run(onStep func(in instruction.Instruction, before Snapshot)) error {
	for !c.Halted() {
		before := c.Snapshot()
		in, err := c.Step()
		if err != nil {
			return err
		}
		if onStep != nil {
			onStep(in, before)
		}
	}
	return c.Err
}

// Halted reports whether the CPU reached a terminal state
func (c *CPU) Halted() bool {
	return c.State == HaltedNormal || c.State == HaltedError
}

func (c *CPU) fail(err error) error {
	c.State = HaltedError
	c.Err = err
	return err
}
