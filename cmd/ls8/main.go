// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8 runs an LS-8 program image, or assembly source.
//
// Usage:
//
//	ls8 [-v] [-a] [-o image] <file>
//
// Each PRN prints a decimal value on its own line. The exit code is 0
// when the program halts, and identifies the failure otherwise.
package main

import (
	"errors"
	"flag"
	"fmt"
	goio "io"
	"log"
	"os"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the ls8 command, returning the process exit code.
func run(args []string, stdout goio.Writer, stderr goio.Writer) (code int) {
	var assemble bool
	var output string
	var verbose bool

	logger := log.New(stderr, "ls8: ", 0)

	flags := flag.NewFlagSet("ls8", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&assemble, "a", false, "File is assembly source")
	flags.StringVar(&output, "o", "", "Write assembled image to file, do not execute")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.Usage = func() {
		translate.Fprintf(stderr, "usage: %v [-v] [-a] [-o image] <file>\n", flags.Name())
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil {
		return emulator.EXIT_USAGE
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return emulator.EXIT_USAGE
	}

	if len(output) != 0 && !assemble {
		logger.Print(fmt.Errorf("%w: -o requires -a", emulator.ErrUsage))
		return emulator.EXIT_USAGE
	}

	if verbose {
		log.SetOutput(stderr)
		log.SetFlags(0)
	}

	name := flags.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Console.Output = stdout

	if assemble {
		err = runSource(emu, name, output)
	} else {
		err = runImage(emu, name)
	}
	if err != nil {
		logger.Printf("%v: %v", name, err)
		return emulator.ExitCode(err)
	}

	return emulator.EXIT_OK
}

// runImage loads and runs a program image.
func runImage(emu *emulator.Emulator, name string) (err error) {
	image, err := io.OpenImage(name)
	if err != nil {
		return
	}

	err = emu.Load(image)
	if err != nil {
		return
	}

	err = emu.Run()
	return
}

// runSource assembles a source file. If output is set, the image is
// written to it, otherwise the program is run.
func runSource(emu *emulator.Emulator, name string, output string) (err error) {
	inf, err := os.Open(name)
	if err != nil {
		err = &io.ErrProgramNotFound{Name: name, Err: err}
		return
	}
	defer inf.Close()

	prog, err := emu.Assemble(inf)
	if err != nil {
		return
	}

	if len(output) != 0 {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		err = errors.Join(io.WriteImage(ouf, prog.Listing()), ouf.Close())
		return
	}

	err = emu.LoadProgram(prog)
	if err != nil {
		return
	}

	err = emu.Run()
	return
}
