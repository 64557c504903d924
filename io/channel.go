// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the LS-8 program image format and its output device.
//
// Program images are text, one base-2 literal per line, with '#' comments.
// The Console is the device PRN writes register values to.
package io

// Channel defines the interface for output devices attached to the CPU.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single byte to the channel.
	Send(value uint8) error
}
