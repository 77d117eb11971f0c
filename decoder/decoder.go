// Package decoder turns 8086 machine code into instruction values.
//
// Decoding never writes to the byte store and never moves its cursor:
// callers commit the returned size themselves.
package decoder

import (
	"sim86/instruction"
)

// Source is the program image the decoder reads from
type Source interface {
	ReadMemoryByte(addr uint32) byte
	Len() uint32
}

// mod field values
const (
	modMemory   = 0b00
	modMemory8  = 0b01
	modMemory16 = 0b10
	modRegister = 0b11

	// r/m code meaning "direct address" in memory mode
	directAddressCode = 0b110
)

// reader fetches instruction bytes from a fixed start address and
// counts how many were consumed. It refuses to read past the program.
type reader struct {
	src   Source
	start uint32
	n     uint32
}

func (r *reader) byte() (byte, error) {
	addr := r.start + r.n
	if addr >= r.src.Len() {
		return 0, ErrTruncatedInstruction
	}
	r.n++
	return r.src.ReadMemoryByte(addr), nil
}

func (r *reader) word() (uint16, error) {
	lo, err := r.byte()
	if err != nil {
		return 0, err
	}
	hi, err := r.byte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// data reads an immediate. A full word is kept as the raw unsigned value,
// a single byte is sign-extended.
func (r *reader) data(w, s byte) (instruction.Immediate, error) {
	if w == 1 && s == 0 {
		v, err := r.word()
		return instruction.Immediate{Value: int32(v)}, err
	}
	v, err := r.byte()
	return instruction.Immediate{Value: int32(int8(v))}, err
}

// Decode decodes the instruction starting at address pos
func Decode(src Source, pos uint32) (instruction.Instruction, error) {
	r := &reader{src: src, start: pos}

	b, err := r.byte()
	if err != nil {
		return instruction.Instruction{}, &Error{Address: pos, Err: err}
	}

	var in instruction.Instruction
	found := false
	for _, l := range decodeTable {
		if b&l.mask == l.match {
			in, err = decodeFamily(r, b, l.family, l.op)
			found = true
			break
		}
	}
	if !found {
		err = ErrUnrecognizedOpcode
	}
	if err != nil {
		return instruction.Instruction{}, &Error{Address: pos, Opcode: b, Err: err}
	}

	in.Address = pos
	in.Size = uint8(r.n)
	return in, nil
}

func decodeFamily(r *reader, b byte, f family, op instruction.Op) (instruction.Instruction, error) {
	switch f {
	case familyJump:
		return decodeJump(r, op)
	case familyRegMemToFromReg:
		return decodeRegMemToFromReg(r, b, op)
	case familyImmediateToRegMem:
		return decodeImmediateToRegMem(r, b, op)
	case familyImmediateToAccumulator:
		return decodeImmediateToAccumulator(r, b)
	case familyImmediateToReg:
		return decodeImmediateToReg(r, b)
	case familyMemoryToAccumulator, familyAccumulatorToMemory:
		return decodeAccumulatorMemory(r, b, f == familyMemoryToAccumulator)
	}
	return instruction.Instruction{}, ErrUnrecognizedOpcode
}

// decodeModRM reads the mod-reg-r/m byte and the displacement that follows it.
// It returns the reg field and the r/m operand.
func decodeModRM(r *reader, w byte) (byte, instruction.Operand, error) {
	b, err := r.byte()
	if err != nil {
		return 0, nil, err
	}
	mod := (b >> 6) & 0b11
	reg := (b >> 3) & 0b111
	rm := b & 0b111

	switch mod {
	case modRegister:
		return reg, instruction.RegisterCode(rm, w), nil
	case modMemory:
		if rm == directAddressCode {
			addr, err := r.word()
			if err != nil {
				return 0, nil, err
			}
			return reg, memOperand(instruction.Direct, int32(addr)), nil
		}
		return reg, memOperand(instruction.Base(rm), 0), nil
	case modMemory8:
		d, err := r.byte()
		if err != nil {
			return 0, nil, err
		}
		return reg, memOperand(instruction.Base(rm), int32(int8(d))), nil
	default:
		d, err := r.word()
		if err != nil {
			return 0, nil, err
		}
		return reg, memOperand(instruction.Base(rm), int32(int16(d))), nil
	}
}

func memOperand(base instruction.Base, disp int32) instruction.Memory {
	return instruction.Memory{EffectiveAddress: instruction.EffectiveAddress{Base: base, Displacement: disp}}
}

func subOp(field byte) (instruction.Op, error) {
	op := subOps[field&7]
	if op == instruction.None {
		return op, ErrUnrecognizedOpcode
	}
	return op, nil
}

// jump: single signed byte displacement from the end of the instruction
func decodeJump(r *reader, op instruction.Op) (instruction.Instruction, error) {
	d, err := r.byte()
	if err != nil {
		return instruction.Instruction{}, err
	}
	return instruction.Instruction{
		Op:       op,
		Operands: []instruction.Operand{instruction.Immediate{Value: int32(int8(d)), Relative: true}},
	}, nil
}

// ooooo d w | mod reg r/m | disp-lo | disp-hi
func decodeRegMemToFromReg(r *reader, b byte, op instruction.Op) (instruction.Instruction, error) {
	var err error
	if op == instruction.None {
		if op, err = subOp(b >> 3); err != nil {
			return instruction.Instruction{}, err
		}
	}
	d := (b >> 1) & 1
	w := b & 1

	reg, rm, err := decodeModRM(r, w)
	if err != nil {
		return instruction.Instruction{}, err
	}
	regOperand := instruction.RegisterCode(reg, w)

	operands := []instruction.Operand{rm, regOperand}
	if d == 1 {
		operands = []instruction.Operand{regOperand, rm}
	}
	return instruction.Instruction{Op: op, Wide: w == 1, Operands: operands}, nil
}

// 100000 s w | mod ooo r/m | disp | data (arithmetic)
// 1100011 w  | mod 000 r/m | disp | data (mov, sign bit not used)
func decodeImmediateToRegMem(r *reader, b byte, op instruction.Op) (instruction.Instruction, error) {
	s := (b >> 1) & 1
	w := b & 1
	if op != instruction.None {
		s = 0
	}

	field, rm, err := decodeModRM(r, w)
	if err != nil {
		return instruction.Instruction{}, err
	}
	if op == instruction.None {
		if op, err = subOp(field); err != nil {
			return instruction.Instruction{}, err
		}
	}

	imm, err := r.data(w, s)
	if err != nil {
		return instruction.Instruction{}, err
	}
	return instruction.Instruction{Op: op, Wide: w == 1, Operands: []instruction.Operand{rm, imm}}, nil
}

// 00 ooo 10 w | data
func decodeImmediateToAccumulator(r *reader, b byte) (instruction.Instruction, error) {
	op, err := subOp(b >> 3)
	if err != nil {
		return instruction.Instruction{}, err
	}
	w := b & 1
	imm, err := r.data(w, 0)
	if err != nil {
		return instruction.Instruction{}, err
	}
	return instruction.Instruction{
		Op:       op,
		Wide:     w == 1,
		Operands: []instruction.Operand{instruction.RegisterCode(0, w), imm},
	}, nil
}

// 1011 w reg | data
func decodeImmediateToReg(r *reader, b byte) (instruction.Instruction, error) {
	w := (b >> 3) & 1
	imm, err := r.data(w, 0)
	if err != nil {
		return instruction.Instruction{}, err
	}
	return instruction.Instruction{
		Op:       instruction.Mov,
		Wide:     w == 1,
		Operands: []instruction.Operand{instruction.RegisterCode(b&7, w), imm},
	}, nil
}

// 101000 d w | addr-lo | addr-hi. The address is always 16 bit.
func decodeAccumulatorMemory(r *reader, b byte, load bool) (instruction.Instruction, error) {
	w := b & 1
	addr, err := r.word()
	if err != nil {
		return instruction.Instruction{}, err
	}
	acc := instruction.RegisterCode(0, w)
	mem := memOperand(instruction.Direct, int32(addr))

	operands := []instruction.Operand{mem, acc}
	if load {
		operands = []instruction.Operand{acc, mem}
	}
	return instruction.Instruction{Op: instruction.Mov, Wide: w == 1, Operands: operands}, nil
}
