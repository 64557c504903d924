// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/memory"
)

// Process exit codes, one per error condition.
const (
	EXIT_OK                = 0 // HLT executed, or image written.
	EXIT_FAILURE           = 1 // Any other failure.
	EXIT_USAGE             = 2 // Command line usage.
	EXIT_NOT_FOUND         = 3 // Program could not be opened or read.
	EXIT_MALFORMED_LITERAL = 4 // Program image line is not a binary literal.
	EXIT_UNKNOWN_OPCODE    = 5 // Byte at PC is not an opcode.
	EXIT_UNSUPPORTED       = 6 // ALU operation unsupported or divide by zero.
	EXIT_OUT_OF_RANGE      = 7 // Register index, or image size, out of range.
	EXIT_ASSEMBLY          = 8 // Assembly source error.
)

var ErrUsage = errors.New(f("usage"))

// ExitCode maps an error to its process exit code.
func ExitCode(err error) (code int) {
	var not_found *io.ErrProgramNotFound
	var malformed *io.ErrMalformedLiteral
	var syntax *cpu.ErrSyntax
	var unknown *cpu.ErrUnknownOpcode

	switch {
	case err == nil:
		code = EXIT_OK
	case errors.Is(err, ErrUsage):
		code = EXIT_USAGE
	case errors.As(err, &not_found):
		code = EXIT_NOT_FOUND
	case errors.As(err, &malformed):
		code = EXIT_MALFORMED_LITERAL
	case errors.As(err, &syntax):
		code = EXIT_ASSEMBLY
	case errors.As(err, &unknown):
		code = EXIT_UNKNOWN_OPCODE
	case errors.Is(err, cpu.ErrUnsupportedOperation(0)),
		errors.Is(err, cpu.ErrDivideByZero):
		code = EXIT_UNSUPPORTED
	case errors.Is(err, cpu.ErrAddressOutOfRange(0)),
		errors.Is(err, memory.ErrImageTooLarge):
		code = EXIT_OUT_OF_RANGE
	default:
		code = EXIT_FAILURE
	}

	return
}
