// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator assembles the LS-8 machine: memory, CPU and console.
package emulator

import (
	"fmt"
	goio "io"
	"iter"
	"maps"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/memory"
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", memory.MEMORY_SIZE),
}

// Emulator state. CPU + Memory + Console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Console io.Console // PRN output channel.
}

// NewEmulator creates a new emulator, printing to os.Stdout.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(memory.NewMemory()),
		Program: &cpu.Program{},
	}

	emu.Console.Output = os.Stdout
	emu.Cpu.SetChannel(&emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses assembly source, with the emulator defines predefined.
func (emu *Emulator) Assemble(input goio.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(input)
	return
}

// Load clears memory, copies the image into it, then resets the CPU.
// The program listing is cleared.
func (emu *Emulator) Load(image []uint8) (err error) {
	emu.Program = &cpu.Program{}

	err = emu.load(image)
	return
}

// LoadProgram loads an assembled program, keeping its listing
// for line number lookups.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.Program = prog

	err = emu.load(prog.Binary())
	return
}

func (emu *Emulator) load(image []uint8) (err error) {
	mem := emu.Cpu.Memory

	mem.Reset()
	mem.Verbose = emu.Verbose

	err = mem.Load(image)
	if err != nil {
		return
	}

	emu.Reset()

	return
}

// Reset the CPU state, and memory statistics. Memory contents are kept.
func (emu *Emulator) Reset() {
	mem := emu.Cpu.Memory

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	mem.Reads = 0
	mem.Writes = 0
	mem.BitsFlipped = 0
}

// LineNo returns the current line number for the executing opcode,
// or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	address := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()
	if err != nil {
		err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until it halts, or an error.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
