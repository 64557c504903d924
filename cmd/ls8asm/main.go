// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command ls8asm assembles LS-8 source into a program image.
//
// Usage:
//
//	ls8asm [-v] [-o image] <file.asm>
//
// The image is written to stdout unless -o is given.
package main

import (
	"errors"
	"flag"
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

// run executes the ls8asm command, returning the process exit code.
func run(args []string, stdout goio.Writer, stderr goio.Writer) (code int) {
	var output string
	var verbose bool

	logger := log.New(stderr, "ls8asm: ", 0)

	flags := flag.NewFlagSet("ls8asm", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&output, "o", "", "Image output file")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.Usage = func() {
		translate.Fprintf(stderr, "usage: %v [-v] [-o image] <file.asm>\n", flags.Name())
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

	if verbose {
		log.SetOutput(stderr)
		log.SetFlags(0)
	}

	name := flags.Arg(0)

	err = assemble(name, output, stdout, verbose)
	if err != nil {
		logger.Printf("%v: %v", name, err)
		return emulator.ExitCode(err)
	}

	return emulator.EXIT_OK
}

// assemble writes the image of the named source file to output, or to
// stdout if output is empty.
func assemble(name string, output string, stdout goio.Writer, verbose bool) (err error) {
	inf, err := os.Open(name)
	if err != nil {
		err = &io.ErrProgramNotFound{Name: name, Err: err}
		return
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	prog, err := emu.Assemble(inf)
	if err != nil {
		return
	}

	if len(output) == 0 {
		err = io.WriteImage(stdout, prog.Listing())
		return
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	err = errors.Join(io.WriteImage(ouf, prog.Listing()), ouf.Close())
	return
}
