package cpu

import "sim86/instruction"

// Definitions of the 8086 short branching instructions.
// IP already points to the next instruction when these run.

// branch moves IP by the signed displacement of a relative jump
func (c *CPU) branch(in instruction.Instruction) {
	if d, ok := in.Destination().(instruction.Immediate); ok {
		c.IP += uint16(int16(d.Value))
	}
}

// je - jump if equal (zero)
func (c *CPU) jeOp(in instruction.Instruction) error {
	if c.Psw.Z() {
		c.branch(in)
	}
	return nil
}

// jnz - jump if not zero
func (c *CPU) jnzOp(in instruction.Instruction) error {
	if !c.Psw.Z() {
		c.branch(in)
	}
	return nil
}

// js - jump if sign
func (c *CPU) jsOp(in instruction.Instruction) error {
	if c.Psw.S() {
		c.branch(in)
	}
	return nil
}

// jns - jump if not sign
func (c *CPU) jnsOp(in instruction.Instruction) error {
	if !c.Psw.S() {
		c.branch(in)
	}
	return nil
}

// decCX decrements cx without touching the flags and returns the new value
func (c *CPU) decCX() uint16 {
	cx := c.Get(instruction.CX) - 1
	c.Set(instruction.CX, cx)
	return cx
}

// loop - decrement cx, jump while it is not zero
func (c *CPU) loopOp(in instruction.Instruction) error {
	if c.decCX() != 0 {
		c.branch(in)
	}
	return nil
}

// loopz - decrement cx, jump while it is not zero and Z is set
func (c *CPU) loopzOp(in instruction.Instruction) error {
	if c.decCX() != 0 && c.Psw.Z() {
		c.branch(in)
	}
	return nil
}

// loopnz - decrement cx, jump while it is not zero and Z is clear
func (c *CPU) loopnzOp(in instruction.Instruction) error {
	if c.decCX() != 0 && !c.Psw.Z() {
		c.branch(in)
	}
	return nil
}

// jcxz - jump if cx is zero
func (c *CPU) jcxzOp(in instruction.Instruction) error {
	if c.Get(instruction.CX) == 0 {
		c.branch(in)
	}
	return nil
}
