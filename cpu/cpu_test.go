// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/memory"
)

// newTestCpu loads an image into a new CPU with a console attached.
func newTestCpu(t *testing.T, image ...uint8) (cpu *Cpu, output *bytes.Buffer) {
	mem := memory.NewMemory()
	err := mem.Load(image)
	if err != nil {
		t.Fatal(err)
	}

	output = &bytes.Buffer{}
	cpu = NewCpu(mem)
	cpu.SetChannel(&io.Console{Output: output})
	cpu.Reset()

	return
}

var (
	hlt  = uint8(OP_HLT)
	ret  = uint8(OP_RET)
	push = uint8(OP_PUSH)
	pop  = uint8(OP_POP)
	prn  = uint8(OP_PRN)
	call = uint8(OP_CALL)
	ldi  = uint8(OP_LDI)
	add  = uint8(OP_ADD)
	mul  = uint8(OP_MUL)
)

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	cpu.Pc = 0x10
	cpu.Register[0] = 0xaa
	cpu.Register[SP] = 0x20
	cpu.Halted = true
	cpu.Ticks = 5

	cpu.Reset()

	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(RegisterFile{0, 0, 0, 0, 0, 0, 0, SP_INIT}, cpu.Register)
	assert.False(cpu.Halted)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_Mult(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		ldi, 0, 8,
		ldi, 1, 9,
		mul, 0, 1,
		prn, 0,
		hlt,
	)

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal("72\n", output.String())
	assert.True(cpu.Halted)
	assert.Equal(uint8(11), cpu.Pc)
	assert.Equal(5, cpu.Ticks)

	// A halted CPU stays halted.
	assert.ErrorIs(cpu.Tick(), ErrHalted)
}

func TestCpu_LdiPrn(t *testing.T) {
	assert := assert.New(t)

	for value := range 256 {
		for reg := range uint8(REGISTER_COUNT) {
			cpu, output := newTestCpu(t, ldi, reg, uint8(value), prn, reg, hlt)
			err := cpu.Run()
			assert.NoError(err)
			assert.Equal(strconv.Itoa(value)+"\n", output.String())
		}
	}
}

func TestCpu_AddWraps(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     uint8
		a, b   uint8
		result uint8
	}){
		{"add", add, 2, 3, 5},
		{"add_wrap", add, 250, 10, 4},
		{"add_max", add, 255, 255, 254},
		{"mul", mul, 8, 9, 72},
		{"mul_wrap", mul, 16, 17, 16},
		{"mul_zero", mul, 200, 0, 0},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t,
			ldi, 2, entry.a,
			ldi, 5, entry.b,
			entry.op, 2, 5,
			hlt,
		)
		err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal(entry.result, cpu.Register[2], entry.name)
		assert.Equal(entry.b, cpu.Register[5], entry.name)
	}
}

func TestCpu_AddSelf(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, ldi, 0, 100, add, 0, 0, hlt)
	assert.NoError(cpu.Run())
	assert.Equal(uint8(200), cpu.Register[0])
}

func TestCpu_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		ldi, 0, 42,
		push, 0,
		ldi, 0, 0,
		pop, 0,
		hlt,
	)

	assert.NoError(cpu.Tick())
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(SP_INIT-1), cpu.Register[SP])
	assert.Equal(uint8(42), cpu.Memory.Cell[SP_INIT-1])
	assert.Equal(1, cpu.Stack().Depth())

	assert.NoError(cpu.Run())
	assert.Equal(uint8(42), cpu.Register[0])
	assert.Equal(uint8(SP_INIT), cpu.Register[SP])
	assert.Equal(0, cpu.Stack().Depth())
}

func TestCpu_PushPopOrder(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		ldi, 0, 1,
		ldi, 1, 2,
		ldi, 2, 3,
		push, 0,
		push, 1,
		push, 2,
		pop, 3,
		prn, 3,
		pop, 3,
		prn, 3,
		pop, 3,
		prn, 3,
		hlt,
	)

	assert.NoError(cpu.Run())
	assert.Equal("3\n2\n1\n", output.String())
	assert.Equal(uint8(SP_INIT), cpu.Register[SP])
}

func TestCpu_PushSp(t *testing.T) {
	assert := assert.New(t)

	// SP is an ordinary register; pushing it stores its
	// value after the decrement.
	cpu, _ := newTestCpu(t, push, SP, pop, 0, hlt)
	assert.NoError(cpu.Run())
	assert.Equal(uint8(SP_INIT-1), cpu.Register[0])
	assert.Equal(uint8(SP_INIT), cpu.Register[SP])
}

func TestCpu_PopSp(t *testing.T) {
	assert := assert.New(t)

	// Popping into SP loads the value, then increments it.
	cpu, _ := newTestCpu(t, ldi, 0, 0x80, push, 0, pop, SP, hlt)
	assert.NoError(cpu.Run())
	assert.Equal(uint8(0x81), cpu.Register[SP])
}

func TestCpu_CallSp(t *testing.T) {
	assert := assert.New(t)

	// CALL reads the target register after pushing the return address.
	cpu, _ := newTestCpu(t, call, SP)
	assert.NoError(cpu.Tick())
	assert.Equal(uint8(SP_INIT-1), cpu.Pc)
	assert.Equal(uint8(0x02), cpu.Memory.Cell[SP_INIT-1])
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	// 00: LDI R1,Double
	// 03: LDI R0,7
	// 06: CALL R1
	// 08: PRN R0
	// 0a: HLT
	// 0b: Double: ADD R0,R0
	// 0e: RET
	cpu, output := newTestCpu(t,
		ldi, 1, 0x0b,
		ldi, 0, 7,
		call, 1,
		prn, 0,
		hlt,
		add, 0, 0,
		ret,
	)

	for range 3 {
		assert.NoError(cpu.Tick())
	}
	assert.Equal(uint8(0x0b), cpu.Pc)
	assert.Equal(uint8(SP_INIT-1), cpu.Register[SP])
	assert.Equal(uint8(0x08), cpu.Memory.Cell[SP_INIT-1])

	assert.NoError(cpu.Run())
	assert.Equal("14\n", output.String())
	assert.Equal(uint8(SP_INIT), cpu.Register[SP])
	assert.Equal(uint8(0x0a), cpu.Pc)
}

func TestCpu_NestedCall(t *testing.T) {
	assert := assert.New(t)

	// Each level N calls level N+1, then returns.
	// 00: LDI R1,First
	// 03: CALL R1
	// 05: HLT
	// 06: First: LDI R2,Second
	// 09: CALL R2
	// 0b: RET
	// 0c: Second: LDI R3,Third
	// 0f: CALL R3
	// 11: RET
	// 12: Third: PRN R3
	// 14: RET
	cpu, output := newTestCpu(t,
		ldi, 1, 0x06,
		call, 1,
		hlt,
		ldi, 2, 0x0c,
		call, 2,
		ret,
		ldi, 3, 0x12,
		call, 3,
		ret,
		prn, 3,
		ret,
	)

	returns := map[uint8]uint8{}
	for !cpu.Halted {
		pc := cpu.Pc
		code, err := cpu.FetchCode()
		assert.NoError(err)
		assert.NoError(cpu.Tick())
		if code.Opcode == OP_CALL {
			returns[pc+2] = cpu.Register[SP]
		}
		if code.Opcode == OP_RET {
			sp, ok := returns[cpu.Pc]
			assert.True(ok, "0x%02x", cpu.Pc)
			assert.Equal(sp+1, cpu.Register[SP])
		}
	}

	assert.Equal("18\n", output.String())
	assert.Equal(uint8(SP_INIT), cpu.Register[SP])
	assert.Len(returns, 3)
}

func TestCpu_UnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	// An empty image fetches opcode 0 at address 0.
	cpu, _ := newTestCpu(t)
	err := cpu.Run()

	var unknown *ErrUnknownOpcode
	if assert.True(errors.As(err, &unknown)) {
		assert.Equal(Opcode(0), unknown.Opcode)
		assert.Equal(uint8(0), unknown.Address)
	}
	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(0, cpu.Ticks)

	cpu, _ = newTestCpu(t, ldi, 0, 1, 0xa1, 0, 0)
	err = cpu.Run()
	if assert.True(errors.As(err, &unknown)) {
		assert.Equal(Opcode(0xa1), unknown.Opcode)
		assert.Equal(uint8(3), unknown.Address)
	}
	assert.Contains(err.Error(), "0xa1")
}

func TestCpu_RegisterOutOfRange(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		image []uint8
	}){
		{"ldi", []uint8{ldi, 8, 1}},
		{"prn", []uint8{prn, 9}},
		{"add_a", []uint8{add, 8, 0}},
		{"add_b", []uint8{add, 0, 0xff}},
		{"mul", []uint8{mul, 1, 200}},
		{"push", []uint8{push, 8}},
		{"pop", []uint8{pop, 8}},
		{"call", []uint8{call, 8}},
	}

	for _, entry := range table {
		cpu, output := newTestCpu(t, entry.image...)
		before := *cpu.Memory
		err := cpu.Tick()
		assert.ErrorIs(err, ErrAddressOutOfRange(0), entry.name)
		assert.Equal(uint8(0), cpu.Pc, entry.name)
		assert.Equal(uint8(SP_INIT), cpu.Register[SP], entry.name)
		assert.Equal(before.Cell, cpu.Memory.Cell, entry.name)
		assert.Equal(0, output.Len(), entry.name)
	}
}

func TestCpu_NoChannel(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, prn, 0, hlt)
	cpu.SetChannel(nil)
	assert.ErrorIs(cpu.Tick(), ErrChannelInvalid)
	assert.Equal(uint8(0), cpu.Pc)
}

func TestCpu_PcWraps(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, hlt)
	cpu.Memory.Write(0xfe, ldi)
	cpu.Memory.Write(0xff, 3)
	cpu.Pc = 0xfe

	// The immediate wraps to address 0, the HLT opcode.
	assert.NoError(cpu.Tick())
	assert.Equal(hlt, cpu.Register[3])
	assert.Equal(uint8(0x01), cpu.Pc)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, ldi, 0, 0x2a, push, 0, hlt)
	assert.Contains(cpu.String(), "stack: --")

	assert.NoError(cpu.Run())

	text := cpu.String()
	assert.Contains(text, "   pc: 05")
	assert.Contains(text, "   r0: 2A")
	assert.Contains(text, "   r7: F3")
	assert.Contains(text, "stack: 2A")
}

func TestCpu_Trace(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, ldi, 0, 8, hlt)
	assert.Equal("TRACE: 00 | 82 00 08 | 00 00 00 00 00 00 00 F4", cpu.Trace())

	reads := cpu.Memory.Reads
	assert.NoError(cpu.Tick())
	assert.Equal("TRACE: 03 | 01 00 00 | 08 00 00 00 00 00 00 F4", cpu.Trace())
	assert.Equal(reads+3, cpu.Memory.Reads)
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("R7", defines["SP"])
	assert.Equal("0xf4", defines["SP_INIT"])
}
