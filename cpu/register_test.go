// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_Reset(t *testing.T) {
	assert := assert.New(t)

	rf := RegisterFile{1, 2, 3, 4, 5, 6, 7, 8}
	rf.Reset()
	assert.Equal(RegisterFile{0, 0, 0, 0, 0, 0, 0, SP_INIT}, rf)
}

func TestRegisterFile_GetSet(t *testing.T) {
	assert := assert.New(t)

	var rf RegisterFile
	for index := range uint8(REGISTER_COUNT) {
		assert.NoError(rf.Set(index, index+0x10))
	}

	for index := range uint8(REGISTER_COUNT) {
		value, err := rf.Get(index)
		assert.NoError(err)
		assert.Equal(index+0x10, value)
	}
}

func TestRegisterFile_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	var rf RegisterFile
	rf.Reset()
	before := rf

	for _, index := range []uint8{REGISTER_COUNT, 0x10, 0xff} {
		assert.ErrorIs(rf.Check(index), ErrAddressOutOfRange(index))

		_, err := rf.Get(index)
		assert.ErrorIs(err, ErrAddressOutOfRange(0))

		err = rf.Set(index, 0x55)
		assert.ErrorIs(err, ErrAddressOutOfRange(0))
		assert.Equal(before, rf)
	}
}
