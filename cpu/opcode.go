// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Opcode is the first byte of every instruction.
type Opcode uint8

const (
	OP_HLT  = Opcode(0b0000_0001) // Halt the CPU.
	OP_RET  = Opcode(0b0001_0001) // Return from subroutine.
	OP_PUSH = Opcode(0b0100_0101) // Push register onto the stack.
	OP_POP  = Opcode(0b0100_0110) // Pop the stack into a register.
	OP_PRN  = Opcode(0b0100_0111) // Print register as decimal.
	OP_CALL = Opcode(0b0101_0000) // Call subroutine at address in register.
	OP_LDI  = Opcode(0b1000_0010) // Load register with immediate.
	OP_ADD  = Opcode(0b1010_0000) // Add registers.
	OP_MUL  = Opcode(0b1010_0010) // Multiply registers.
)

// ArgKind is the kind of an instruction operand.
type ArgKind int

//go:generate go tool stringer -linecomment -type=ArgKind
const (
	ARG_REG = ArgKind(0) // reg
	ARG_IMM = ArgKind(1) // imm8
)

// Instruction describes the encoding of an opcode.
type Instruction struct {
	Mnemonic string
	Args     []ArgKind
}

// Operands is the number of operand bytes following the opcode.
func (inst Instruction) Operands() int {
	return len(inst.Args)
}

// Size is the number of bytes in the encoded instruction.
func (inst Instruction) Size() int {
	return 1 + len(inst.Args)
}

// instructionTable is the complete LS-8 instruction set.
var instructionTable = map[Opcode]Instruction{
	OP_HLT:  {"HLT", nil},
	OP_RET:  {"RET", nil},
	OP_PUSH: {"PUSH", []ArgKind{ARG_REG}},
	OP_POP:  {"POP", []ArgKind{ARG_REG}},
	OP_PRN:  {"PRN", []ArgKind{ARG_REG}},
	OP_CALL: {"CALL", []ArgKind{ARG_REG}},
	OP_LDI:  {"LDI", []ArgKind{ARG_REG, ARG_IMM}},
	OP_ADD:  {"ADD", []ArgKind{ARG_REG, ARG_REG}},
	OP_MUL:  {"MUL", []ArgKind{ARG_REG, ARG_REG}},
}

// mnemonicMap maps upper case mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	mnemonics := make(map[string]Opcode, len(instructionTable))
	for op, inst := range instructionTable {
		mnemonics[inst.Mnemonic] = op
	}
	return mnemonics
}()

// Decode returns the instruction description of an opcode.
func Decode(op Opcode) (inst Instruction, ok bool) {
	inst, ok = instructionTable[op]
	return
}

// Lookup returns the opcode for a mnemonic, in any case.
func Lookup(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

// Opcodes returns all of the valid opcodes, in ascending order.
func Opcodes() []Opcode {
	return slices.Sorted(maps.Keys(instructionTable))
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	inst, ok := instructionTable[op]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}
	return inst.Mnemonic
}

// Code is a fetched instruction: an opcode and its operand bytes.
type Code struct {
	Opcode   Opcode
	Operands []uint8
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst, ok := Decode(code.Opcode)
	if !ok {
		return code.Opcode.String()
	}

	args := make([]string, 0, len(code.Operands))
	for n, operand := range code.Operands {
		if n < len(inst.Args) && inst.Args[n] == ARG_REG {
			args = append(args, fmt.Sprintf("R%d", operand))
		} else {
			args = append(args, fmt.Sprintf("%d", operand))
		}
	}

	if len(args) == 0 {
		return inst.Mnemonic
	}

	return inst.Mnemonic + " " + strings.Join(args, ",")
}
