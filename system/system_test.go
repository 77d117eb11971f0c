package system

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sim86/console"
	"sim86/cpu"
	"sim86/decoder"
	"sim86/instruction"
)

var loopProgram = []byte{
	0xb9, 0x02, 0x00, // mov cx, 2
	0x83, 0xe9, 0x01, // sub cx, 1
	0x75, 0xfb, // jnz $-3
}

func newSystem(config Config) (*System, *bytes.Buffer, *bytes.Buffer) {
	var out, diag bytes.Buffer
	sys := InitializeSystem(console.NewWriter(&out), log.New(&diag, "", 0), config)
	return sys, &out, &diag
}

func TestSystem_Disassemble(t *testing.T) {
	sys, out, _ := newSystem(Config{})
	if err := sys.Boot("loop.bin", bytes.NewReader(loopProgram)); err != nil {
		t.Fatal(err)
	}
	if err := sys.Disassemble(); err != nil {
		t.Fatalf("Disassemble() error = %v", err)
	}

	want := "; loop.bin disassembly\nbits 16\nmov cx, 2\nsub cx, 1\njnz $-3\n"
	if out.String() != want {
		t.Errorf("Disassemble() output:\n%s\nwant:\n%s", out, want)
	}
	if sys.CPU.Get(instruction.CX) != 0 || sys.CPU.Steps() != 0 {
		t.Errorf("disassembly touched the register file")
	}
	if sys.Memory.Cursor() != uint32(len(loopProgram)) {
		t.Errorf("cursor = %d, want %d", sys.Memory.Cursor(), len(loopProgram))
	}
}

func TestSystem_DisassembleStopsOnTruncation(t *testing.T) {
	sys, out, diag := newSystem(Config{})
	program := []byte{0x89, 0xd9, 0x8b, 0x86}
	if err := sys.Boot("short.bin", bytes.NewReader(program)); err != nil {
		t.Fatal(err)
	}

	err := sys.Disassemble()
	if !errors.Is(err, decoder.ErrTruncatedInstruction) {
		t.Fatalf("Disassemble() error = %v, want ErrTruncatedInstruction", err)
	}
	if !strings.HasSuffix(out.String(), "mov cx, bx\n") {
		t.Errorf("expected the instructions before the failure to be printed, got:\n%s", out)
	}
	if !strings.Contains(diag.String(), "short.bin") {
		t.Errorf("diagnostic does not name the file: %q", diag.String())
	}
	if !strings.Contains(diag.String(), "(bytes: 8b 86)") {
		t.Errorf("diagnostic does not show the undecoded bytes: %q", diag.String())
	}
}

func TestSystem_DisassembleTwice(t *testing.T) {
	sys, out, _ := newSystem(Config{})
	if err := sys.Boot("loop.bin", bytes.NewReader(loopProgram)); err != nil {
		t.Fatal(err)
	}

	if err := sys.Disassemble(); err != nil {
		t.Fatal(err)
	}
	first := out.String()
	out.Reset()
	if err := sys.Disassemble(); err != nil {
		t.Fatal(err)
	}
	if out.String() != first {
		t.Errorf("second disassembly differs:\n%s\nfirst:\n%s", out, first)
	}
}

func TestSystem_Execute(t *testing.T) {
	sys, out, _ := newSystem(Config{Execute: true, TraceRegisters: true})
	if err := sys.Boot("loop.bin", bytes.NewReader(loopProgram)); err != nil {
		t.Fatal(err)
	}
	if err := sys.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"--- loop.bin execution ---\n",
		"mov cx, 2 ; cx:0x0->0x2 ip:0x0->0x3\n",
		"sub cx, 1 ; cx:0x2->0x1 ip:0x3->0x6\n",
		"jnz $-3 ; ip:0x6->0x3\n",
		"sub cx, 1 ; cx:0x1->0x0 ip:0x3->0x6 flags:->Z\n",
		"jnz $-3 ; ip:0x6->0x8\n",
		"Final registers:\n",
		"      cx: 0x0000 (0)\n",
		"      ip: 0x0008 (8)\n",
		"   flags: Z=1 S=0\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Execute() output missing %q:\n%s", want, out)
		}
	}
	if sys.CPU.State != cpu.HaltedNormal {
		t.Errorf("state = %v, want %v", sys.CPU.State, cpu.HaltedNormal)
	}
}

func TestSystem_ExecuteWithoutTrace(t *testing.T) {
	sys, out, _ := newSystem(Config{Execute: true})
	if err := sys.Boot("loop.bin", bytes.NewReader(loopProgram)); err != nil {
		t.Fatal(err)
	}
	if err := sys.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\nmov cx, 2\nsub cx, 1\n") {
		t.Errorf("unexpected trace:\n%s", out)
	}
}

func TestSystem_ExecuteErrorHasNoReport(t *testing.T) {
	sys, out, diag := newSystem(Config{Execute: true})
	if err := sys.Boot("or.bin", bytes.NewReader([]byte{0x0c, 0x01})); err != nil {
		t.Fatal(err)
	}
	if err := sys.Execute(); !errors.Is(err, cpu.ErrNotExecutable) {
		t.Fatalf("Execute() error = %v, want ErrNotExecutable", err)
	}
	if strings.Contains(out.String(), "Final registers") {
		t.Errorf("register report printed after a failed run")
	}
	if !strings.Contains(diag.String(), "or al, 1") {
		t.Errorf("diagnostic does not name the instruction: %q", diag.String())
	}
}

func TestSystem_RunContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"bad.bin":   {0xf4},
		"empty.bin": {},
		"good.bin":  {0x89, 0xd9},
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	sys, out, diag := newSystem(Config{})
	err := sys.Run([]string{
		filepath.Join(dir, "bad.bin"),
		filepath.Join(dir, "missing.bin"),
		filepath.Join(dir, "empty.bin"),
		filepath.Join(dir, "good.bin"),
	})

	if !errors.Is(err, decoder.ErrUnrecognizedOpcode) || !errors.Is(err, ErrEmptyProgram) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want unrecognized opcode, empty program and missing file", err)
	}
	if !strings.HasSuffix(out.String(), "good.bin disassembly\nbits 16\nmov cx, bx\n") {
		t.Errorf("the last file was not disassembled:\n%s", out)
	}
	if strings.Count(diag.String(), "\n") != 3 {
		t.Errorf("expected three diagnostics, got:\n%s", diag)
	}
}
