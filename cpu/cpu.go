// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/memory"
)

// Channel is an output channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"SP":      fmt.Sprintf("R%d", SP),
	"SP_INIT": fmt.Sprintf("0x%02x", SP_INIT),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable trace logging.

	Memory *memory.Memory // Reference to the memory simulation.

	Pc       uint8        // Program counter.
	Register RegisterFile // Register bank.
	Halted   bool         // Set once HLT has executed.

	Ticks int // Instructions executed since reset.

	channel Channel // PRN output channel.
}

// NewCpu creates a new CPU attached to a memory.
func NewCpu(mem *memory.Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: mem,
	}

	cpu.Register.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Stack returns the view of memory through SP.
func (cpu *Cpu) Stack() Stack {
	return Stack{Memory: cpu.Memory, Register: &cpu.Register}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	for n, value := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), value)
	}

	stack := cpu.Stack()
	strval := "--"
	if stack.Depth() > 0 {
		strval = fmt.Sprintf("%02X", stack.Peek())
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", strval)

	return
}

// Trace returns a single line summary of the CPU state:
// PC, the next three bytes of memory, and the registers.
func (cpu *Cpu) Trace() string {
	mem := &cpu.Memory.Cell

	var regs strings.Builder
	for _, value := range cpu.Register {
		fmt.Fprintf(&regs, " %02X", value)
	}

	return fmt.Sprintf("TRACE: %02X | %02X %02X %02X |%v",
		cpu.Pc, mem[cpu.Pc], mem[cpu.Pc+1], mem[cpu.Pc+2], regs.String())
}

// Reset the CPU state.
// - Zeros the PC, and R0-R6.
// - Sets SP to SP_INIT.
// - Zeros statistics counters.
// - Rewinds the output channel.
//
// Memory is not modified.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Register.Reset()
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// SetChannel sets the PRN output channel.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel gets the PRN output channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.channel
	return
}

// FetchCode fetches the instruction at PC, and its operands.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	op := Opcode(cpu.Memory.Read(cpu.Pc))
	inst, ok := Decode(op)
	if !ok {
		err = &ErrUnknownOpcode{Opcode: op, Address: cpu.Pc}
		return
	}

	code.Opcode = op
	for n := range inst.Operands() {
		code.Operands = append(code.Operands, cpu.Memory.Read(cpu.Pc+1+uint8(n)))
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Verbose && !cpu.Halted {
		log.Print(cpu.Trace())
	}

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	return
}

// Run ticks until HLT, or an error.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at PC.
// On error, the CPU state is not modified.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	inst, ok := Decode(code.Opcode)
	if !ok {
		err = &ErrUnknownOpcode{Opcode: code.Opcode, Address: cpu.Pc}
		return
	}

	if len(code.Operands) != inst.Operands() {
		err = ErrOperandMissing
		return
	}

	// Operands are registers unless stated otherwise; check them all
	// before any state changes.
	for n, kind := range inst.Args {
		if kind == ARG_REG {
			err = cpu.Register.Check(code.Operands[n])
			if err != nil {
				return
			}
		}
	}

	var a, b uint8
	if len(code.Operands) > 0 {
		a = code.Operands[0]
	}
	if len(code.Operands) > 1 {
		b = code.Operands[1]
	}

	next_pc := cpu.Pc + uint8(inst.Size())
	stack := cpu.Stack()

	switch code.Opcode {
	case OP_LDI:
		cpu.Register[a] = b
	case OP_PRN:
		var channel Channel
		channel, err = cpu.GetChannel()
		if err != nil {
			return
		}
		err = channel.Send(cpu.Register[a])
		if err != nil {
			return
		}
	case OP_ADD:
		err = cpu.apply(ALU_ADD, a, b)
	case OP_MUL:
		err = cpu.apply(ALU_MUL, a, b)
	case OP_PUSH:
		stack.PushFrom(a)
	case OP_POP:
		stack.PopInto(a)
	case OP_CALL:
		stack.Push(next_pc)
		next_pc = cpu.Register[a]
	case OP_RET:
		next_pc = stack.Pop()
	case OP_HLT:
		cpu.Halted = true
		next_pc = cpu.Pc
	default:
		err = &ErrUnknownOpcode{Opcode: code.Opcode, Address: cpu.Pc}
	}
	if err != nil {
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// apply performs an ALU operation on two registers, writing the result
// to the first.
func (cpu *Cpu) apply(op AluOp, dst uint8, src uint8) (err error) {
	a, err := cpu.Register.Get(dst)
	if err != nil {
		return
	}

	b, err := cpu.Register.Get(src)
	if err != nil {
		return
	}

	output, err := Alu(op, a, b)
	if err != nil {
		return
	}

	err = cpu.Register.Set(dst, output)
	return
}
