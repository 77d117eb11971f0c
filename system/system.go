package system

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"sim86/console"
	"sim86/cpu"
	"sim86/decoder"
	"sim86/instruction"
	"sim86/memory"
)

// ErrEmptyProgram -> the loaded file had no bytes in it
var ErrEmptyProgram = errors.New("unable to load simulator memory")

// longest encoding of the supported subset: opcode, mod-reg-r/m, 2 displacement and 2 data bytes
const maxInstructionSize = 6

// Config selects what a run does
type Config struct {
	// Execute runs the program instead of disassembling it
	Execute bool

	// TraceRegisters appends register changes to every executed instruction
	TraceRegisters bool

	// MaxSteps limits executed instructions, 0 means no limit
	MaxSteps int
}

// System definition: the byte store and register file of one run.
type System struct {
	Memory *memory.Memory
	CPU    *cpu.CPU

	name    string
	config  Config
	console console.Console
	log     *log.Logger
}

// InitializeSystem builds an empty system writing its output to c
func InitializeSystem(c console.Console, log *log.Logger, config Config) *System {
	sys := new(System)
	sys.console = c
	sys.log = log
	sys.config = config
	sys.Memory = memory.New()
	sys.CPU = cpu.New(sys.Memory)
	return sys
}

// Name returns the name of the loaded program
func (sys *System) Name() string {
	return sys.name
}

// Run boots every file in turn and disassembles or executes it.
// A failing file is reported and skipped, the joined errors are returned.
func (sys *System) Run(files []string) error {
	var errs []error
	for _, f := range files {
		if err := sys.BootFile(f); err != nil {
			sys.log.Printf("%v", err)
			errs = append(errs, err)
			continue
		}

		var err error
		if sys.config.Execute {
			err = sys.Execute()
		} else {
			err = sys.Disassemble()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// Disassemble walks the loaded program from address 0 and prints every
// instruction. The register file is not touched.
func (sys *System) Disassemble() error {
	sys.write("; %s disassembly\nbits 16\n", sys.name)

	sys.Memory.Seek(0)
	for sys.Memory.Remaining() > 0 {
		in, err := decoder.Decode(sys.Memory, sys.Memory.Cursor())
		if err != nil {
			sys.log.Printf("%s: %v (bytes: %s)", sys.name, err, sys.undecoded())
			return err
		}
		sys.Memory.Advance(uint32(in.Size))
		sys.write("%s\n", in)
	}
	return nil
}

// Execute runs the loaded program to a halt, printing every applied
// instruction and the final register state.
func (sys *System) Execute() error {
	sys.write("--- %s execution ---\n", sys.name)

	err := sys.CPU.Run(func(in instruction.Instruction, before cpu.Snapshot) {
		sys.write("%s\n", sys.TraceLine(in, before))
	})
	if err != nil {
		sys.log.Printf("%s: %v", sys.name, err)
		return err
	}

	sys.write("\nFinal registers:\n%s\n", sys.CPU.DumpRegisters())
	return nil
}

// TraceLine renders an executed instruction, with the register changes
// it caused when tracing is on
func (sys *System) TraceLine(in instruction.Instruction, before cpu.Snapshot) string {
	if !sys.config.TraceRegisters {
		return in.String()
	}
	changes := cpu.Changes(before, sys.CPU.Snapshot())
	if changes == "" {
		return in.String() + " ;"
	}
	return in.String() + " ; " + changes
}

// undecoded dumps the program bytes at the cursor, at most one instruction long
func (sys *System) undecoded() string {
	var b strings.Builder
	for i := uint32(0); i < maxInstructionSize; i++ {
		v, err := sys.Memory.Peek(i)
		if errors.Is(err, memory.ErrOutOfRange) {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", v)
	}
	return b.String()
}

func (sys *System) write(format string, args ...any) {
	if err := sys.console.WriteConsole(fmt.Sprintf(format, args...)); err != nil {
		sys.log.Printf("console: %v", err)
	}
}
