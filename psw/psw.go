package psw

/**
Processor status word package.
Only the zero and sign flags of the 8086 flags register are modelled.
*/

// flag layout. Values here are bits, not the powers of 2,
// at the same positions as in the 8086 flags register
const zFlag = 6
const sFlag = 7

// PSW keeps processor status word
type PSW uint16

// Z returns Z flag
func (psw *PSW) Z() bool {
	return psw.getFlag(zFlag)
}

// SetZ sets processor Z flag
func (psw *PSW) SetZ(status bool) {
	psw.setFlag(zFlag, status)
}

// S returns S flag
func (psw *PSW) S() bool {
	return psw.getFlag(sFlag)
}

// SetS sets processor S flag
func (psw *PSW) SetS(status bool) {
	psw.setFlag(sFlag, status)
}

// Update sets Z and S from a 16 bit arithmetic result
func (psw *PSW) Update(result uint16) {
	psw.SetZ(result == 0)
	psw.SetS(result&0x8000 != 0)
}

// generic get flag function
func (psw *PSW) getFlag(flag uint) bool {
	return (*psw & (1 << flag)) > 0
}

// generic set flag function
func (psw *PSW) setFlag(flag uint, status bool) {
	if status {
		*psw |= (1 << flag)
	} else {
		*psw &^= (1 << flag)
	}
}

// GetFlags returns the letters of the set flags, "" if none
func (psw *PSW) GetFlags() string {
	var flags string
	if psw.Z() {
		flags += "Z"
	}
	if psw.S() {
		flags += "S"
	}
	return flags
}
