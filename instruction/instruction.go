package instruction

import (
	"fmt"
	"strings"
)

// Op is the operation of a decoded instruction
type Op uint8

// Operations
const (
	None Op = iota
	Mov
	Add
	Or
	Adc
	Sbb
	And
	Sub
	Cmp
	Jo
	Jno
	Jb
	Jnb
	Je
	Jnz
	Jbe
	Ja
	Js
	Jns
	Jp
	Jnp
	Jl
	Jnl
	Jle
	Jg
	Loopnz
	Loopz
	Loop
	Jcxz
)

var mnemonics = [...]string{
	"none", "mov", "add", "or", "adc", "sbb", "and", "sub", "cmp",
	"jo", "jno", "jb", "jnb", "je", "jnz", "jbe", "ja",
	"js", "jns", "jp", "jnp", "jl", "jnl", "jle", "jg",
	"loopnz", "loopz", "loop", "jcxz",
}

func (o Op) String() string {
	if int(o) >= len(mnemonics) {
		return fmt.Sprintf("op(%d)", uint8(o))
	}
	return mnemonics[o]
}

// Branch reports whether o is one of the short relative jumps
func (o Op) Branch() bool {
	return o >= Jo && o <= Jcxz
}

// Instruction is a single decoded instruction
type Instruction struct {
	Address  uint32
	Size     uint8
	Op       Op
	Wide     bool
	Operands []Operand
}

// Destination returns the first operand, or nil
func (in Instruction) Destination() Operand {
	if len(in.Operands) == 0 {
		return nil
	}
	return in.Operands[0]
}

// Source returns the second operand, or nil
func (in Instruction) Source() Operand {
	if len(in.Operands) < 2 {
		return nil
	}
	return in.Operands[1]
}

func (in Instruction) hasRegister() bool {
	for _, o := range in.Operands {
		if _, ok := o.(Register); ok {
			return true
		}
	}
	return false
}

// String renders the instruction in NASM syntax
func (in Instruction) String() string {
	if len(in.Operands) == 0 {
		return in.Op.String()
	}

	// size keyword only when no register tells the width
	sized := !in.hasRegister()

	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, o := range in.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		switch o := o.(type) {
		case Memory:
			if sized {
				if in.Wide {
					b.WriteString("word ")
				} else {
					b.WriteString("byte ")
				}
			}
			b.WriteString(o.String())
		case Immediate:
			if o.Relative {
				// NASM $ is the start of the instruction
				fmt.Fprintf(&b, "$%+d", o.Value+int32(in.Size))
			} else {
				b.WriteString(o.String())
			}
		case Register:
			b.WriteString(o.String())
		}
	}
	return b.String()
}
