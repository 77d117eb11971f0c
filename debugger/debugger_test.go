package debugger

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"sim86/console"
	"sim86/system"
)

func newDebugger(t *testing.T, program ...byte) *Debugger {
	t.Helper()
	sys := system.InitializeSystem(console.NewWriter(io.Discard), log.New(io.Discard, "", 0),
		system.Config{Execute: true, TraceRegisters: true})
	if err := sys.Boot("test.bin", bytes.NewReader(program)); err != nil {
		t.Fatal(err)
	}
	return New(sys)
}

func TestDebugger_Step(t *testing.T) {
	d := newDebugger(t,
		0xb9, 0x02, 0x00, // mov cx, 2
		0x83, 0xe9, 0x01, // sub cx, 1
		0x75, 0xfb, // jnz $-3
	)

	steps := []string{
		"next: 00003  sub cx, 1",
		"next: 00006  jnz $-3",
		"next: 00003  sub cx, 1",
		"next: 00006  jnz $-3",
		"halted after 5 instructions",
		"halted after 5 instructions",
	}
	for i, want := range steps {
		if got := d.Step(); got != want {
			t.Errorf("step %d: Step() = %q, want %q", i, got, want)
		}
	}

	listing := d.Listing()
	if !strings.HasPrefix(listing, "00000  mov cx, 2 ; cx:0x0->0x2 ip:0x0->0x3\n") {
		t.Errorf("unexpected listing:\n%s", listing)
	}
	if n := strings.Count(listing, "\n") + 1; n != 5 {
		t.Errorf("listing has %d lines, want 5", n)
	}
}

func TestDebugger_RunToHalt(t *testing.T) {
	d := newDebugger(t, 0xb0, 0x01, 0x0c, 0x02) // mov al, 1; or al, 2

	msg := d.RunToHalt()
	if !strings.HasPrefix(msg, "halted: instruction cannot be executed: or al, 2") {
		t.Errorf("RunToHalt() = %q", msg)
	}
}

func TestHistory(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		lines []string
		want  []string
	}{
		{"empty", 2, nil, nil},
		{"not full", 3, []string{"a", "b"}, []string{"a", "b"}},
		{"exactly full", 2, []string{"a", "b"}, []string{"a", "b"}},
		{"oldest dropped", 2, []string{"a", "b", "c"}, []string{"b", "c"}},
		{"wrapped twice", 2, []string{"a", "b", "c", "d", "e"}, []string{"d", "e"}},
		{"zero size keeps nothing", 0, []string{"a"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			for _, l := range tt.lines {
				h.Add(l)
			}
			got := h.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Lines() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Lines() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestDebugger_StepMarksNotExecutable(t *testing.T) {
	d := newDebugger(t, 0xb0, 0x01, 0x0c, 0x02) // mov al, 1; or al, 2

	if got, want := d.Step(), "next: 00002  or al, 2 (not executable)"; got != want {
		t.Errorf("Step() = %q, want %q", got, want)
	}
}
