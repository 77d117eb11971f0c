package psw

import (
	"testing"
)

func TestPSW_Z(t *testing.T) {
	tests := []struct {
		name string
		p    PSW
		want bool
	}{
		{"Z set, all 0", 0x40, true},
		{"Z set, other flags too", 0xc0, true},
		{"Z clear, all 0", 0, false},
		{"Z clear, S set", 0x80, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			if p.Z() != tt.want {
				t.Errorf("pws.Z() (%v) failed. P: %v, wanted %v, got %v",
					tt.name, p, tt.want, p.Z())
			}
		})
	}
}

func TestPSW_SetS(t *testing.T) {
	tests := []struct {
		name        string
		psw         PSW
		args        bool
		modifiedPsw PSW
	}{
		{"set S P=0", 0, true, 0x80},
		{"set S P=0x80", 0x80, true, 0x80},
		{"clear S P=0", 0, false, 0},
		{"clear S P=0x80", 0x80, false, 0},
		{"clear S P=0xc0", 0xc0, false, 0x40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.psw.SetS(tt.args)
			if tt.psw.S() != tt.args {
				t.Errorf("psw.SetS() (%s) failed. P: %v, expected: %v, got %v \n",
					tt.name, tt.psw, tt.args, tt.psw.S())
			}

			if tt.psw != tt.modifiedPsw {
				t.Errorf("psw.SetS (%s) failed. P = %v, expected P = %v\n",
					tt.name, tt.psw, tt.modifiedPsw)
			}
		})
	}
}

func TestPSW_Update(t *testing.T) {
	tests := []struct {
		name   string
		result uint16
		z, s   bool
		flags  string
	}{
		{"zero", 0, true, false, "Z"},
		{"positive", 1, false, false, ""},
		{"largest positive", 0x7fff, false, false, ""},
		{"bit 15 set", 0x8000, false, true, "S"},
		{"minus one", 0xffff, false, true, "S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PSW
			p.SetS(!tt.s)
			p.SetZ(!tt.z)
			p.Update(tt.result)
			if p.Z() != tt.z || p.S() != tt.s {
				t.Errorf("Update(%#x): Z=%v S=%v, want Z=%v S=%v", tt.result, p.Z(), p.S(), tt.z, tt.s)
			}
			if p.GetFlags() != tt.flags {
				t.Errorf("GetFlags() = %q, want %q", p.GetFlags(), tt.flags)
			}
		})
	}
}
