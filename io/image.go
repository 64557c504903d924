// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/internal"
)

const (
	IMAGE_COMMENT = "#" // Comment marker in program images.
)

// ReadImage reads a program image.
//
// Each line holds at most one base-2 literal of 1 to 8 digits, optionally
// followed by a comment. Lines that are empty once the comment and
// surrounding whitespace are removed are skipped.
func ReadImage(input io.Reader) (image []uint8, err error) {
	var read_err error
	for lineno, text := range internal.IterLines(input, &read_err) {
		token, _, _ := strings.Cut(text, IMAGE_COMMENT)
		token = strings.TrimSpace(token)
		if len(token) == 0 {
			continue
		}

		var value uint8
		value, err = parseLiteral(token)
		if err != nil {
			err = &ErrMalformedLiteral{LineNo: lineno, Line: text, Err: err}
			image = nil
			return
		}

		image = append(image, value)
	}

	err = read_err

	return
}

// parseLiteral parses a base-2 literal with no prefix.
func parseLiteral(token string) (value uint8, err error) {
	if len(token) > 8 {
		err = ErrLiteral
		return
	}

	for _, c := range token {
		if c != '0' && c != '1' {
			err = ErrLiteral
			return
		}
	}

	u64, err := strconv.ParseUint(token, 2, 8)
	if err != nil {
		err = ErrLiteral
		return
	}

	value = uint8(u64)

	return
}

// OpenImage reads the named program image file.
func OpenImage(name string) (image []uint8, err error) {
	inf, err := os.Open(name)
	if err != nil {
		err = &ErrProgramNotFound{Name: name, Err: err}
		return
	}
	defer inf.Close()

	image, err = ReadImage(inf)
	if err != nil {
		if _, ok := err.(*ErrMalformedLiteral); !ok {
			err = &ErrProgramNotFound{Name: name, Err: err}
		}
		return
	}

	return
}

// WriteImage writes a program image, one byte per line.
// Non-empty comments are appended to their byte's line.
func WriteImage(output io.Writer, listing iter.Seq2[uint8, string]) (err error) {
	for value, comment := range listing {
		if len(comment) == 0 {
			_, err = fmt.Fprintf(output, "%08b\n", value)
		} else {
			_, err = fmt.Fprintf(output, "%08b %v %v\n", value, IMAGE_COMMENT, comment)
		}
		if err != nil {
			return
		}
	}

	return
}
