package instruction

import "fmt"

// Operand is one of Register, Memory or Immediate.
type Operand interface {
	fmt.Stringer
	isOperand()
}

// Base selects the registers summed into an effective address.
// The values 0..7 are the r/m field of the mod-reg-r/m byte.
type Base uint8

const (
	BaseBXSI Base = iota
	BaseBXDI
	BaseBPSI
	BaseBPDI
	BaseSI
	BaseDI
	BaseBP
	BaseBX

	// Direct means no base registers, the displacement is the address
	Direct
)

var baseNames = [...]string{"bx + si", "bx + di", "bp + si", "bp + di", "si", "di", "bp", "bx", ""}

var baseRegisters = [...][]Register{
	{BX, SI}, {BX, DI}, {BP, SI}, {BP, DI}, {SI}, {DI}, {BP}, {BX}, nil,
}

// Registers returns the word registers added to the displacement
func (b Base) Registers() []Register {
	if int(b) >= len(baseRegisters) {
		return nil
	}
	return baseRegisters[b]
}

func (b Base) String() string {
	if int(b) >= len(baseNames) {
		return "?"
	}
	return baseNames[b]
}

// EffectiveAddress is a base register pair plus a signed displacement.
// For Direct addresses Displacement holds the unsigned 16 bit address.
type EffectiveAddress struct {
	Base         Base
	Displacement int32
}

// Memory operand
type Memory struct {
	EffectiveAddress
}

func (m Memory) String() string {
	if m.Base == Direct {
		return fmt.Sprintf("[%d]", m.Displacement)
	}
	switch {
	case m.Displacement > 0:
		return fmt.Sprintf("[%s + %d]", m.Base, m.Displacement)
	case m.Displacement < 0:
		return fmt.Sprintf("[%s - %d]", m.Base, -m.Displacement)
	}
	return "[" + m.Base.String() + "]"
}

func (Memory) isOperand() {}

// Immediate operand. Relative immediates are branch displacements
// counted from the end of the instruction.
type Immediate struct {
	Value    int32
	Relative bool
}

func (i Immediate) String() string {
	return fmt.Sprintf("%d", i.Value)
}

func (Immediate) isOperand() {}
