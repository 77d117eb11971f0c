package cpu

import (
	"errors"
	"fmt"
	"strings"

	"sim86/instruction"
	"sim86/memory"
	"sim86/psw"
)

// State of the execution state machine
type State int

// CPU states. HaltedNormal and HaltedError are terminal.
const (
	Fetching State = iota
	Decoded
	Applying
	HaltedNormal
	HaltedError
)

var stateNames = [...]string{"fetching", "decoded", "applying", "halted", "halted (error)"}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// execution errors
var (
	// ErrNotExecutable -> the instruction decodes but has no execution semantics
	ErrNotExecutable = errors.New("instruction cannot be executed")

	// ErrStepLimit -> the run executed more instructions than allowed
	ErrStepLimit = errors.New("step limit reached")

	// ErrHalted -> Step was called on a halted CPU
	ErrHalted = errors.New("cpu is halted")

	// ErrSegmentOverflow -> the next instruction would start past the 64KB reachable by IP
	ErrSegmentOverflow = errors.New("instruction pointer overflows the code segment")
)

// Memory is what the CPU needs from the byte store: random access
// plus the size of the loaded program.
type Memory interface {
	memory.MemoryManager
	Len() uint32
	Contains(addr uint32) bool
}

// CPU type: register file, flags and instruction pointer of one run.
type CPU struct {
	// general purpose registers in hardware order: ax cx dx bx sp bp si di
	Registers [8]uint16
	IP        uint16
	Psw       psw.PSW
	State     State

	// Err is the reason of a HaltedError state
	Err error

	// MaxSteps, when positive, limits the number of executed instructions
	MaxSteps int
	steps    int

	mem Memory

	// opcodes maps an operation to the function executing it
	opcodes map[instruction.Op](func(instruction.Instruction) error)
}

// New initializes and returns the CPU variable
func New(mem Memory) *CPU {
	c := CPU{mem: mem}

	c.opcodes = make(map[instruction.Op](func(instruction.Instruction) error))
	c.opcodes[instruction.Mov] = c.movOp
	c.opcodes[instruction.Add] = c.addOp
	c.opcodes[instruction.Sub] = c.subOp
	c.opcodes[instruction.Cmp] = c.cmpOp

	// branches depending only on Z, S and CX
	c.opcodes[instruction.Je] = c.jeOp
	c.opcodes[instruction.Jnz] = c.jnzOp
	c.opcodes[instruction.Js] = c.jsOp
	c.opcodes[instruction.Jns] = c.jnsOp
	c.opcodes[instruction.Loop] = c.loopOp
	c.opcodes[instruction.Loopz] = c.loopzOp
	c.opcodes[instruction.Loopnz] = c.loopnzOp
	c.opcodes[instruction.Jcxz] = c.jcxzOp

	c.Reset()
	return &c
}

// Reset clears registers and flags and restarts at address 0.
// Memory is left alone.
func (c *CPU) Reset() {
	c.Registers = [8]uint16{}
	c.IP = 0
	c.Psw = 0
	c.Err = nil
	c.steps = 0
	c.State = Fetching
	if c.mem.Len() == 0 {
		c.State = HaltedNormal
	}
}

// Steps returns the number of executed instructions
func (c *CPU) Steps() int {
	return c.steps
}

// Executable reports whether op has execution semantics
func (c *CPU) Executable(op instruction.Op) bool {
	_, ok := c.opcodes[op]
	return ok
}

// Get returns the value of a register view
func (c *CPU) Get(r instruction.Register) uint16 {
	w := c.Registers[r.Word()]
	switch {
	case r.Wide():
		return w
	case r.High():
		return w >> 8
	}
	return w & 0xff
}

// Set writes a register view. Byte writes keep the other half of the word.
func (c *CPU) Set(r instruction.Register, v uint16) {
	i := r.Word()
	switch {
	case r.Wide():
		c.Registers[i] = v
	case r.High():
		c.Registers[i] = c.Registers[i]&0x00ff | (v&0xff)<<8
	default:
		c.Registers[i] = c.Registers[i]&0xff00 | v&0xff
	}
}

// EffectiveAddress resolves an address expression against the current registers
func (c *CPU) EffectiveAddress(ea instruction.EffectiveAddress) uint16 {
	addr := uint16(ea.Displacement)
	for _, r := range ea.Base.Registers() {
		addr += c.Get(r)
	}
	return addr
}

// read returns the value of an operand, 8 or 16 bits wide
func (c *CPU) read(o instruction.Operand, wide bool) (uint16, error) {
	switch o := o.(type) {
	case instruction.Register:
		return c.Get(o), nil
	case instruction.Memory:
		addr := uint32(c.EffectiveAddress(o.EffectiveAddress))
		if wide {
			return c.mem.ReadMemoryWord(addr), nil
		}
		return uint16(c.mem.ReadMemoryByte(addr)), nil
	case instruction.Immediate:
		if wide {
			return uint16(o.Value), nil
		}
		return uint16(o.Value) & 0xff, nil
	}
	return 0, fmt.Errorf("unknown operand %v", o)
}

// write stores v into a register or memory operand
func (c *CPU) write(o instruction.Operand, wide bool, v uint16) error {
	switch o := o.(type) {
	case instruction.Register:
		c.Set(o, v)
		return nil
	case instruction.Memory:
		addr := uint32(c.EffectiveAddress(o.EffectiveAddress))
		if wide {
			c.mem.WriteMemoryWord(addr, v)
		} else {
			c.mem.WriteMemoryByte(addr, byte(v))
		}
		return nil
	}
	return fmt.Errorf("cannot write to operand %v", o)
}

// helper functions:

// Snapshot is a copy of the register file, used to report changes
type Snapshot struct {
	Registers [8]uint16
	IP        uint16
	Psw       psw.PSW
}

// Snapshot returns the current register state
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{Registers: c.Registers, IP: c.IP, Psw: c.Psw}
}

// Changes lists the registers that differ between two snapshots,
// as "cx:0x0->0x2 ip:0x0->0x3 flags:->Z"
func Changes(before, after Snapshot) string {
	var out []string
	for _, r := range dumpOrder {
		i := r.Word()
		if before.Registers[i] != after.Registers[i] {
			out = append(out, fmt.Sprintf("%s:%#x->%#x", r, before.Registers[i], after.Registers[i]))
		}
	}
	if before.IP != after.IP {
		out = append(out, fmt.Sprintf("ip:%#x->%#x", before.IP, after.IP))
	}
	if before.Psw != after.Psw {
		out = append(out, fmt.Sprintf("flags:%s->%s", before.Psw.GetFlags(), after.Psw.GetFlags()))
	}
	return strings.Join(out, " ")
}

// register dump order
var dumpOrder = []instruction.Register{
	instruction.AX, instruction.BX, instruction.CX, instruction.DX,
	instruction.SP, instruction.BP, instruction.SI, instruction.DI,
}

// DumpRegisters returns every register in hex and decimal plus the flags
func (c *CPU) DumpRegisters() string {
	var res strings.Builder
	for _, r := range dumpOrder {
		v := c.Get(r)
		fmt.Fprintf(&res, "      %s: 0x%04x (%d)\n", r, v, v)
	}
	fmt.Fprintf(&res, "      ip: 0x%04x (%d)\n", c.IP, c.IP)
	fmt.Fprintf(&res, "   flags: Z=%d S=%d", bit(c.Psw.Z()), bit(c.Psw.S()))
	return res.String()
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
