// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	REGISTER_COUNT = 8    // General purpose registers, including SP.
	SP             = 7    // Register index of the stack pointer.
	SP_INIT        = 0xf4 // Stack pointer at reset.
)

// RegisterFile is the LS-8 register bank. R7 is the stack pointer,
// but is otherwise an ordinary register.
type RegisterFile [REGISTER_COUNT]uint8

// Reset zeros R0-R6, and sets SP to SP_INIT.
func (rf *RegisterFile) Reset() {
	*rf = RegisterFile{}
	rf[SP] = SP_INIT
}

// Check returns ErrAddressOutOfRange if index is not a register.
func (rf *RegisterFile) Check(index uint8) (err error) {
	if index >= REGISTER_COUNT {
		err = ErrAddressOutOfRange(index)
	}
	return
}

// Get the value of a register.
func (rf *RegisterFile) Get(index uint8) (value uint8, err error) {
	err = rf.Check(index)
	if err != nil {
		return
	}

	value = rf[index]
	return
}

// Set the value of a register.
func (rf *RegisterFile) Set(index uint8, value uint8) (err error) {
	err = rf.Check(index)
	if err != nil {
		return
	}

	rf[index] = value
	return
}
