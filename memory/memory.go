// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the byte addressed RAM of the LS-8.
package memory

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/bits"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

const (
	MEMORY_SIZE = 256 // Number of addressable cells.
)

var (
	ErrImageTooLarge = errors.New(f("image too large"))
)

// Memory is 256 bytes of RAM, addressed by a single byte.
type Memory struct {
	Verbose bool // If set, logs all writes.

	Cell [MEMORY_SIZE]uint8

	Reads       int // Read accesses since reset.
	Writes      int // Write accesses since reset.
	BitsFlipped int // Bits changed by writes since reset.
}

// NewMemory creates a new, zeroed, memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}

	return
}

// Reset zeros all cells and statistics.
func (mem *Memory) Reset() {
	clear(mem.Cell[:])

	mem.Reads = 0
	mem.Writes = 0
	mem.BitsFlipped = 0
}

// Read the cell at address.
func (mem *Memory) Read(address uint8) (value uint8) {
	mem.Reads++
	value = mem.Cell[address]
	return
}

// Write value to the cell at address.
func (mem *Memory) Write(address uint8, value uint8) {
	if mem.Verbose {
		log.Printf("mem: [0x%02x] 0x%02x -> 0x%02x", address, mem.Cell[address], value)
	}

	mem.Writes++
	mem.BitsFlipped += bits.OnesCount8(mem.Cell[address] ^ value)
	mem.Cell[address] = value
}

// Load copies an image into memory, starting at address 0.
// Memory is not modified if the image does not fit.
func (mem *Memory) Load(image []uint8) (err error) {
	if len(image) > len(mem.Cell) {
		err = fmt.Errorf("%w: %v > %v", ErrImageTooLarge, len(image), len(mem.Cell))
		return
	}

	for address, value := range image {
		mem.Write(uint8(address), value)
	}

	return
}

// Dump writes a hex dump of memory, 16 cells per row.
func (mem *Memory) Dump(out io.Writer) (err error) {
	for row := 0; row < len(mem.Cell); row += 16 {
		_, err = fmt.Fprintf(out, "%02x: % x\n", row, mem.Cell[row:row+16])
		if err != nil {
			return
		}
	}

	return
}
