// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("halted"))
	ErrChannelInvalid = errors.New(f("channel invalid"))
	ErrDivideByZero   = errors.New(f("divide by zero"))
	ErrOperandMissing = errors.New(f("operand missing"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrEquateRecursion    = errors.New(f(".equ too deeply nested"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOperandCount       = errors.New(f("wrong number of operands"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrRegisterExpected   = errors.New(f("register expected"))
	ErrValueExpected      = errors.New(f("value expected"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
)

// ErrUnknownOpcode is returned when the byte at PC is not an opcode.
type ErrUnknownOpcode struct {
	Opcode  Opcode
	Address uint8
}

func (err *ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x at 0x%02x", uint8(err.Opcode), err.Address)
}

// ErrAddressOutOfRange is returned when a register operand is not 0-7.
type ErrAddressOutOfRange uint8

func (ea ErrAddressOutOfRange) Error() string {
	return f("register %d out of range", uint8(ea))
}

func (ea ErrAddressOutOfRange) Is(err error) (ok bool) {
	_, ok = err.(ErrAddressOutOfRange)
	return
}

// ErrUnsupportedOperation is returned by the ALU for an unknown operation.
type ErrUnsupportedOperation AluOp

func (eu ErrUnsupportedOperation) Error() string {
	return f("unsupported ALU operation %v", AluOp(eu).String())
}

func (eu ErrUnsupportedOperation) Is(err error) (ok bool) {
	_, ok = err.(ErrUnsupportedOperation)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
