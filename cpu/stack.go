// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"github.com/ezrec/ls8/memory"
)

// Stack is a view of memory through the stack pointer register.
// It grows down; SP addresses the most recently pushed byte.
type Stack struct {
	Memory   *memory.Memory
	Register *RegisterFile
}

// Pointer returns the current stack pointer.
func (s Stack) Pointer() uint8 {
	return s.Register[SP]
}

// Push decrements SP, then writes value at SP.
func (s Stack) Push(value uint8) {
	s.Register[SP]--
	s.Memory.Write(s.Register[SP], value)
}

// Pop reads the value at SP, then increments SP.
func (s Stack) Pop() (value uint8) {
	value = s.Memory.Read(s.Register[SP])
	s.Register[SP]++
	return
}

// PushFrom decrements SP, then writes register index at SP.
// Pushing SP stores the decremented value.
func (s Stack) PushFrom(index uint8) {
	s.Register[SP]--
	s.Memory.Write(s.Register[SP], s.Register[index])
}

// PopInto reads the value at SP into register index, then increments SP.
// Popping into SP leaves SP one past the popped value.
func (s Stack) PopInto(index uint8) {
	s.Register[index] = s.Memory.Read(s.Register[SP])
	s.Register[SP]++
}

// Peek reads the value at SP.
func (s Stack) Peek() (value uint8) {
	return s.Memory.Cell[s.Register[SP]]
}

// Depth is the number of bytes pushed since reset.
// It is negative if more bytes were popped than pushed.
func (s Stack) Depth() int {
	return SP_INIT - int(s.Register[SP])
}
