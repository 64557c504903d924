// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7)
// of which R7 is the stack pointer (SP), an ALU, and a fetch-decode-execute
// loop over single byte opcodes followed by zero to two operand bytes. The
// stack lives in memory, below SP_INIT, and grows down.
//
// The stack is not bounds checked. A program that pushes deep enough will
// overwrite its own code, and one that pops past SP_INIT reads the top of
// memory.
//
// The assembler translates LS-8 assembly language into program images,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
