// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/memory"
)

const (
	EQUATE_DEPTH = 16 // Maximum nesting of equates.
)

// asmLine is a line of assembly, with comments removed.
type asmLine struct {
	Labels []string `@Label*`
	Op     *asmOp   `@@?`
}

// asmOp is a mnemonic or directive, and its operands.
type asmOp struct {
	Mnemonic string    `@Ident`
	Args     []*asmArg `( @@ ( ","? @@ )* )?`
}

// asmArg is a single operand.
type asmArg struct {
	Expr   *string `  @Expr`
	Number *string `| @Number`
	Name   *string `| @Ident`
}

func (arg *asmArg) String() string {
	switch {
	case arg.Expr != nil:
		return *arg.Expr
	case arg.Number != nil:
		return *arg.Number
	case arg.Name != nil:
		return *arg.Name
	}
	return ""
}

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Label", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*:`},
	{Name: "Expr", Pattern: `\$\([^$,]*\)`},
	{Name: "Number", Pattern: `-?(0[bB][01_]+|0[xX][0-9a-fA-F_]+|[0-9]+)`},
	{Name: "Ident", Pattern: `\.?[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `,`},
})

var asmParser = participle.MustBuild[asmLine](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace"),
)

var argParser = participle.MustBuild[asmArg](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace"),
)

// asmStatement is a parsed line awaiting encoding.
type asmStatement struct {
	lineno  int
	text    string
	address int
	op      *asmOp
	data    bool
	opcode  Opcode
	inst    Instruction
}

// Assembler is a two pass assembler for the LS-8 system.
//
// Syntax is one statement per line:
//
//	[label:]... [MNEMONIC [operand[,] operand]] [; comment]
//
// Operands are registers (R0-R7), numbers, labels, equates, or
// $(...) expressions. The '.equ NAME VALUE' directive defines an equate,
// and 'DB value...' emits raw bytes.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// stripComment removes comments and surrounding whitespace.
func stripComment(text string) string {
	if n := strings.IndexAny(text, ";#"); n >= 0 {
		text = text[:n]
	}
	return strings.TrimSpace(text)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = make(map[string]string, len(asm.predefine))
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	statements, err := asm.layout(input)
	if err != nil {
		return
	}

	for _, stmt := range statements {
		var codes []uint8
		codes, err = asm.encode(stmt)
		if err != nil {
			err = &ErrSyntax{LineNo: stmt.lineno, Line: stmt.text, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("%02x: % x", stmt.address, codes)
		}

		asm.Lines = append(asm.Lines, Line{
			LineNo:  stmt.lineno,
			Address: stmt.address,
			Text:    stmt.text,
			Codes:   codes,
		})
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// layout is the first pass: parse all lines, collect labels and equates,
// and assign addresses.
func (asm *Assembler) layout(input io.Reader) (statements []asmStatement, err error) {
	var read_err error

	address := 0
	for lineno, text := range internal.IterLines(input, &read_err) {
		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		text = stripComment(text)
		if len(text) == 0 {
			continue
		}

		stmt := asmStatement{lineno: lineno, text: text, address: address}

		var size int
		size, err = asm.layoutLine(&stmt)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		if stmt.op == nil {
			continue
		}

		address += size
		if address > memory.MEMORY_SIZE {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: ErrProgramTooLarge}
			return
		}

		statements = append(statements, stmt)
	}

	if read_err != nil {
		statements = nil
		err = read_err
		return
	}

	return
}

// layoutLine parses a single line, defines its labels and equates, and
// returns the number of bytes it will generate.
// stmt.op is left nil if the line generates no bytes.
func (asm *Assembler) layoutLine(stmt *asmStatement) (size int, err error) {
	parsed, err := asmParser.ParseString("", stmt.text)
	if err != nil {
		return
	}

	for _, label := range parsed.Labels {
		label = strings.TrimSuffix(label, ":")
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = stmt.address
	}

	op := parsed.Op
	if op == nil {
		return
	}

	switch strings.ToUpper(op.Mnemonic) {
	case ".EQU":
		if len(op.Args) != 2 || op.Args[0].Name == nil {
			err = ErrEquateSyntax
			return
		}
		name := *op.Args[0].Name
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = op.Args[1].String()
		return
	case "DB":
		if len(op.Args) == 0 {
			err = ErrOperandCount
			return
		}
		stmt.data = true
		size = len(op.Args)
	default:
		var ok bool
		stmt.opcode, ok = Lookup(op.Mnemonic)
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		stmt.inst, _ = Decode(stmt.opcode)
		if len(op.Args) != stmt.inst.Operands() {
			err = ErrOperandCount
			return
		}
		size = stmt.inst.Size()
	}

	stmt.op = op

	return
}

// encode is the second pass: generate the bytes for a statement.
func (asm *Assembler) encode(stmt asmStatement) (codes []uint8, err error) {
	if stmt.data {
		for _, arg := range stmt.op.Args {
			var value uint8
			value, err = asm.immediate(arg)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	codes = append(codes, uint8(stmt.opcode))
	for n, kind := range stmt.inst.Args {
		var value uint8
		switch kind {
		case ARG_REG:
			value, err = asm.register(stmt.op.Args[n])
		case ARG_IMM:
			value, err = asm.immediate(stmt.op.Args[n])
		}
		if err != nil {
			return
		}
		codes = append(codes, value)
	}

	return
}

// register returns the register index of an operand.
func (asm *Assembler) register(arg *asmArg) (index uint8, err error) {
	value, is_reg, err := asm.resolve(arg, 0)
	if err != nil {
		return
	}

	if !is_reg {
		err = ErrRegisterExpected
		return
	}

	index = uint8(value)
	return
}

// immediate returns the 8-bit value of an operand.
// Negative values down to -128 are encoded as two's complement.
func (asm *Assembler) immediate(arg *asmArg) (value uint8, err error) {
	v64, is_reg, err := asm.resolve(arg, 0)
	if err != nil {
		return
	}

	if is_reg {
		err = ErrValueExpected
		return
	}

	if v64 < -128 || v64 > 255 {
		err = fmt.Errorf("%w: %v", ErrValueRange, v64)
		return
	}

	value = uint8(v64)
	return
}

var registerRegexp = regexp.MustCompile(`^[rR]([0-9]+)$`)

// registerOf returns the register index for a register name.
func registerOf(name string) (index int64, ok bool, err error) {
	match := registerRegexp.FindStringSubmatch(name)
	if match == nil {
		return
	}

	ok = true
	index, err = strconv.ParseInt(match[1], 10, 64)
	if err != nil || index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
	}

	return
}

// resolve returns the value of an operand, and if it names a register.
func (asm *Assembler) resolve(arg *asmArg, depth int) (value int64, is_reg bool, err error) {
	if depth > EQUATE_DEPTH {
		err = ErrEquateRecursion
		return
	}

	switch {
	case arg.Expr != nil:
		expr := *arg.Expr
		value, err = asm.parenEval(expr[2:len(expr)-1], depth)
	case arg.Number != nil:
		value, err = strconv.ParseInt(*arg.Number, 0, 64)
		if err != nil {
			err = ErrParseNumber(*arg.Number)
		}
	case arg.Name != nil:
		name := *arg.Name
		value, is_reg, err = registerOf(name)
		if is_reg || err != nil {
			return
		}
		if address, ok := asm.Label[name]; ok {
			value = int64(address)
			return
		}
		if equate, ok := asm.Equate[name]; ok {
			var sub *asmArg
			sub, err = argParser.ParseString(name, equate)
			if err != nil {
				return
			}
			value, is_reg, err = asm.resolve(sub, depth+1)
			return
		}
		err = ErrLabelMissing(name)
	default:
		err = ErrValueExpected
	}

	return
}

var identRegexp = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for _, name := range identRegexp.FindAllString(expr, -1) {
		arg := &asmArg{Name: &name}
		v64, is_reg, _err := asm.resolve(arg, depth+1)
		if _err != nil || is_reg {
			// Leave undefined, starlark will complain if it matters.
			continue
		}
		pred[name] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}
