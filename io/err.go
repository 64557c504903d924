// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Image errors
	ErrLiteral = errors.New(f("not a binary literal"))

	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrProgramNotFound is returned when a program image cannot be opened or read.
type ErrProgramNotFound struct {
	Name string
	Err  error
}

func (err *ErrProgramNotFound) Error() string {
	return f("program %v not found: %v", err.Name, err.Err)
}

func (err *ErrProgramNotFound) Unwrap() error {
	return err.Err
}

// ErrMalformedLiteral is returned when an image line is not a binary literal.
type ErrMalformedLiteral struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrMalformedLiteral) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrMalformedLiteral) Unwrap() error {
	return err.Err
}
