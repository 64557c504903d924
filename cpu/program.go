// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
)

// Line is a line of assembled code with its source location and generated bytes.
type Line struct {
	LineNo  int     // Source line number.
	Address int     // Address of the first byte.
	Text    string  // Source text, without comments.
	Codes   []uint8 // Generated bytes.
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug locates the line that generated the byte at address.
func (prog *Program) Debug(address uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(address) >= line.Address && int(address) < line.Address+len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(address) - line.Address,
			}
			break
		}
	}

	return
}

// Size is the number of bytes in the program image.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size = max(size, line.Address+len(line.Codes))
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (image []uint8) {
	image = make([]uint8, prog.Size())
	for address, code := range prog.Codes() {
		image[address] = code
	}

	return
}

// Codes iterates over each address and generated byte.
func (prog *Program) Codes() iter.Seq2[uint8, uint8] {
	return func(yield func(address uint8, code uint8) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(uint8(line.Address+n), code) {
					return
				}
			}
		}
	}
}

// Listing iterates over each generated byte. The first byte of each
// line is paired with the line's source text, the rest with "".
func (prog *Program) Listing() iter.Seq2[uint8, string] {
	return func(yield func(code uint8, comment string) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				comment := ""
				if n == 0 {
					comment = line.Text
				}
				if !yield(code, comment) {
					return
				}
			}
		}
	}
}
