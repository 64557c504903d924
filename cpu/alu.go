// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_ADD = AluOp(0) // ADD
	ALU_SUB = AluOp(1) // SUB
	ALU_MUL = AluOp(2) // MUL
	ALU_DIV = AluOp(3) // DIV
)

// Alu performs the requested ALU operation on a and b.
// All results wrap to 8 bits.
//
// ALU_SUB and ALU_DIV have no opcode in the instruction set.
func Alu(op AluOp, a uint8, b uint8) (output uint8, err error) {
	switch op {
	case ALU_ADD:
		output = a + b
	case ALU_SUB:
		output = a - b
	case ALU_MUL:
		output = a * b
	case ALU_DIV:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		output = a / b
	default:
		err = ErrUnsupportedOperation(op)
	}

	return
}
