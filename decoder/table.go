package decoder

import "sim86/instruction"

// instruction families, each with its own field layout
type family uint8

const (
	familyJump family = iota
	familyRegMemToFromReg
	familyImmediateToRegMem
	familyImmediateToAccumulator
	familyImmediateToReg
	familyMemoryToAccumulator
	familyAccumulatorToMemory
)

// opcode families, matched by (first byte & mask) == match.
// The masks overlap so the order matters: first match wins and
// entries are sorted from the most to the least specific mask.
// op None means the operation comes from the sub-opcode field.
var decodeTable = []struct {
	mask, match byte
	family      family
	op          instruction.Op
}{
	{0xff, 0b0111_0000, familyJump, instruction.Jo},
	{0xff, 0b0111_0001, familyJump, instruction.Jno},
	{0xff, 0b0111_0010, familyJump, instruction.Jb},
	{0xff, 0b0111_0011, familyJump, instruction.Jnb},
	{0xff, 0b0111_0100, familyJump, instruction.Je},
	{0xff, 0b0111_0101, familyJump, instruction.Jnz},
	{0xff, 0b0111_0110, familyJump, instruction.Jbe},
	{0xff, 0b0111_0111, familyJump, instruction.Ja},
	{0xff, 0b0111_1000, familyJump, instruction.Js},
	{0xff, 0b0111_1001, familyJump, instruction.Jns},
	{0xff, 0b0111_1010, familyJump, instruction.Jp},
	{0xff, 0b0111_1011, familyJump, instruction.Jnp},
	{0xff, 0b0111_1100, familyJump, instruction.Jl},
	{0xff, 0b0111_1101, familyJump, instruction.Jnl},
	{0xff, 0b0111_1110, familyJump, instruction.Jle},
	{0xff, 0b0111_1111, familyJump, instruction.Jg},
	{0xff, 0b1110_0000, familyJump, instruction.Loopnz},
	{0xff, 0b1110_0001, familyJump, instruction.Loopz},
	{0xff, 0b1110_0010, familyJump, instruction.Loop},
	{0xff, 0b1110_0011, familyJump, instruction.Jcxz},
	{0xfe, 0b1100_0110, familyImmediateToRegMem, instruction.Mov},
	{0xfe, 0b1010_0000, familyMemoryToAccumulator, instruction.Mov},
	{0xfe, 0b1010_0010, familyAccumulatorToMemory, instruction.Mov},
	{0xfc, 0b1000_0000, familyImmediateToRegMem, instruction.None},
	{0xfc, 0b1000_1000, familyRegMemToFromReg, instruction.Mov},
	{0xf0, 0b1011_0000, familyImmediateToReg, instruction.Mov},
	{0xc6, 0b0000_0100, familyImmediateToAccumulator, instruction.None},
	{0xc4, 0b0000_0000, familyRegMemToFromReg, instruction.None},
}

// arithmetic sub-opcodes (bits 5..3). 110 is xor, which is not supported.
var subOps = [8]instruction.Op{
	instruction.Add,
	instruction.Or,
	instruction.Adc,
	instruction.Sbb,
	instruction.And,
	instruction.Sub,
	instruction.None,
	instruction.Cmp,
}
