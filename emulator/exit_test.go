// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/memory"
)

func TestExitCode(t *testing.T) {
	runtime := func(err error) error {
		return &ErrRuntime{Address: 0x10, LineNo: 3, Err: err}
	}

	table := [](struct {
		name string
		err  error
		code int
	}){
		{"ok", nil, EXIT_OK},
		{"failure", errors.New("write failed"), EXIT_FAILURE},
		{"halted", runtime(cpu.ErrHalted), EXIT_FAILURE},
		{"channel", runtime(io.ErrChannelClosed), EXIT_FAILURE},
		{"usage", fmt.Errorf("%w: too many arguments", ErrUsage), EXIT_USAGE},
		{"not-found", &io.ErrProgramNotFound{Name: "x", Err: errors.New("nope")}, EXIT_NOT_FOUND},
		{"malformed", &io.ErrMalformedLiteral{LineNo: 1, Line: "2", Err: io.ErrLiteral}, EXIT_MALFORMED_LITERAL},
		{"unknown", runtime(&cpu.ErrUnknownOpcode{Opcode: 0xff, Address: 0x10}), EXIT_UNKNOWN_OPCODE},
		{"unsupported", runtime(cpu.ErrUnsupportedOperation(cpu.ALU_SUB)), EXIT_UNSUPPORTED},
		{"divide", runtime(cpu.ErrDivideByZero), EXIT_UNSUPPORTED},
		{"register", runtime(cpu.ErrAddressOutOfRange(8)), EXIT_OUT_OF_RANGE},
		{"too-large", fmt.Errorf("%w: 257 > 256", memory.ErrImageTooLarge), EXIT_OUT_OF_RANGE},
		{"assembly", &cpu.ErrSyntax{LineNo: 1, Line: "FOO", Err: cpu.ErrInstructionInvalid}, EXIT_ASSEMBLY},
		{"assembly-range", &cpu.ErrSyntax{LineNo: 1, Line: "LDI R8,1", Err: cpu.ErrRegisterInvalid}, EXIT_ASSEMBLY},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert.Equal(t, entry.code, ExitCode(entry.err))
		})
	}
}
