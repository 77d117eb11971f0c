package instruction

// Register identifies a register view. The code packs the 3 bit register
// field of an instruction with its wide bit: reg<<1 | w. Byte views with a
// register field of 4..7 are the high halves of ax, cx, dx and bx.
type Register uint8

// register codes, in hardware order
const (
	AL Register = 0b000_0
	CL Register = 0b001_0
	DL Register = 0b010_0
	BL Register = 0b011_0
	AH Register = 0b100_0
	CH Register = 0b101_0
	DH Register = 0b110_0
	BH Register = 0b111_0
	AX Register = 0b000_1
	CX Register = 0b001_1
	DX Register = 0b010_1
	BX Register = 0b011_1
	SP Register = 0b100_1
	BP Register = 0b101_1
	SI Register = 0b110_1
	DI Register = 0b111_1
)

var registerNames = [...]string{
	"al", "ax", "cl", "cx", "dl", "dx", "bl", "bx",
	"ah", "sp", "ch", "bp", "dh", "si", "bh", "di",
}

// RegisterCode builds the register identity for a decoded reg field and wide bit
func RegisterCode(reg, w byte) Register {
	return Register((reg&7)<<1 | w&1)
}

// Field returns the 3 bit register field of the code
func (r Register) Field() byte {
	return byte(r>>1) & 7
}

// Wide reports whether the register is a 16 bit view
func (r Register) Wide() bool {
	return r&1 == 1
}

// High reports whether r is the upper byte of its word register
func (r Register) High() bool {
	return !r.Wide() && r.Field() >= 4
}

// Word returns the index (0..7) of the word register holding r.
func (r Register) Word() int {
	if r.Wide() {
		return int(r.Field())
	}
	return int(r.Field() & 3)
}

func (r Register) String() string {
	if int(r) >= len(registerNames) {
		return "??"
	}
	return registerNames[r]
}

func (Register) isOperand() {}
