package cpu

import (
	"sim86/instruction"
)

// Definition of the executable 8086 instructions
// All follow the func (*CPU) (instruction.Instruction) error signature

// mov - copy source to destination, flags are not touched
func (c *CPU) movOp(in instruction.Instruction) error {
	v, err := c.read(in.Source(), in.Wide)
	if err != nil {
		return err
	}
	return c.write(in.Destination(), in.Wide, v)
}

func (c *CPU) addOp(in instruction.Instruction) error {
	return c.Add(in.Destination(), in.Source(), in.Wide)
}

func (c *CPU) subOp(in instruction.Instruction) error {
	return c.Sub(in.Destination(), in.Source(), in.Wide)
}

func (c *CPU) cmpOp(in instruction.Instruction) error {
	return c.Cmp(in.Destination(), in.Source(), in.Wide)
}

// Add sets dst = dst + src and updates the flags
func (c *CPU) Add(dst, src instruction.Operand, wide bool) error {
	return c.arithmetic(dst, src, wide, true, func(a, b uint16) uint16 { return a + b })
}

// Sub sets dst = dst - src and updates the flags
func (c *CPU) Sub(dst, src instruction.Operand, wide bool) error {
	return c.arithmetic(dst, src, wide, true, func(a, b uint16) uint16 { return a - b })
}

// Cmp subtracts src from dst for the flags only
func (c *CPU) Cmp(dst, src instruction.Operand, wide bool) error {
	return c.arithmetic(dst, src, wide, false, func(a, b uint16) uint16 { return a - b })
}

func (c *CPU) arithmetic(dst, src instruction.Operand, wide, store bool, f func(a, b uint16) uint16) error {
	a, err := c.read(dst, wide)
	if err != nil {
		return err
	}
	b, err := c.read(src, wide)
	if err != nil {
		return err
	}

	result := f(a, b)
	if !wide {
		// byte results are sign extended, so bit 15 mirrors bit 7
		result = uint16(int16(int8(result)))
	}
	c.Psw.Update(result)

	if !store {
		return nil
	}
	return c.write(dst, wide, result)
}
