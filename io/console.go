// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"io"
	"strconv"
)

// Console prints each byte sent to it as a decimal number on its own line.
type Console struct {
	Output io.Writer

	Lines int // Lines written since rewind.
}

var _ Channel = (*Console)(nil)

// Rewind clears the line counter. Output already written is not retracted.
func (cc *Console) Rewind() {
	cc.Lines = 0
}

// Send writes value in decimal, followed by a newline.
func (cc *Console) Send(value uint8) (err error) {
	if cc.Output == nil {
		err = ErrChannelClosed
		return
	}

	buf := strconv.AppendUint(nil, uint64(value), 10)
	buf = append(buf, '\n')

	_, err = cc.Output.Write(buf)
	if err != nil {
		return
	}

	cc.Lines++

	return
}
