package device

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/aocvm/asm"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	as := &Assembler{}
	program := []string{
		"; bound to r2",
		"#ip 2",
		"addr 1 2 3",
		"",
		"seti 0x10 99 0 ; immediate, b ignored",
		"gtir 7 5 4",
	}

	prog, err := as.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(2, prog.Bind)
	assert.Equal([]Instruction{
		{OP_ADDR, 1, 2, 3},
		{OP_SETI, 16, 99, 0},
		{OP_GTIR, 7, 5, 4},
	}, prog.Instructions)
	assert.Equal([]int{3, 5, 6}, prog.Lines)
	assert.Equal(5, prog.LineNo(1))
	assert.Equal(0, prog.LineNo(3))
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	as := &Assembler{}
	as.Predefine("IP", "4")
	prog, err := as.Parse(strings.NewReader(strings.Join([]string{
		".equ TARGET 28",
		"#ip IP",
		"seti $(TARGET - 1) 0 IP",
	}, "\n")))
	assert.NoError(err)
	if assert.NotNil(prog) {
		assert.Equal(4, prog.Bind)
		assert.Equal([]Instruction{{OP_SETI, 27, 0, 4}}, prog.Instructions)
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"no_ip", []string{"addi 0 1 0"}, 1, ErrIpMissing},
		{"ip_twice", []string{"#ip 0", "#ip 1"}, 2, ErrIpDuplicate},
		{"ip_late", []string{"#ip 0", "addi 0 1 0", "#ip 1"}, 3, ErrIpDuplicate},
		{"ip_syntax", []string{"#ip"}, 1, ErrIpSyntax},
		{"ip_range", []string{"#ip 6"}, 1, ErrRegisterInvalid},
		{"ip_number", []string{"#ip r0"}, 1, asm.ErrParseNumber("r0")},
		{"mnemonic", []string{"#ip 0", "subr 0 1 2"}, 2, asm.ErrOpcodeInvalid},
		{"arity", []string{"#ip 0", "addr 0 1"}, 2, asm.ErrOperandCount},
		{"extra", []string{"#ip 0", "addr 0 1 2 3"}, 2, asm.ErrOperandCount},
		{"number", []string{"#ip 0", "addi 0 x 2"}, 2, asm.ErrParseNumber("x")},
		{"negative", []string{"#ip 0", "addi 0 -1 2"}, 2, asm.ErrParseNumber("-1")},
		{"dest", []string{"#ip 0", "seti 0 0 6"}, 2, ErrRegisterInvalid},
		{"reg_a", []string{"#ip 0", "addi 6 0 0"}, 2, ErrRegisterInvalid},
		{"reg_b", []string{"#ip 0", "gtrr 0 9 0"}, 2, ErrRegisterInvalid},
	}

	for _, entry := range table {
		as := &Assembler{}
		prog, err := as.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *asm.ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}

	as := &Assembler{}
	prog, err := as.Parse(strings.NewReader(""))
	assert.Nil(prog)
	assert.Equal(ErrIpMissing, err)
}

func FuzzAssembler(f *testing.F) {
	f.Add("#ip 0\naddr 1 2 3")
	f.Add("#ip 5\nseti 0 0 5\nbanr 1 1 1")
	f.Add("#ip 9")
	f.Add("muli 1 1 1")

	f.Fuzz(func(t *testing.T, text string) {
		assert := assert.New(t)

		as := &Assembler{}
		prog, err := as.Parse(strings.NewReader(text))
		if err != nil {
			assert.Nil(prog)
			return
		}

		// Anything that assembles must execute without a decode error.
		assert.GreaterOrEqual(prog.Bind, 0)
		for _, ins := range prog.Instructions {
			reg := [REGISTERS]uint64{}
			assert.NoError(Execute(&reg, ins), ins.String())
		}
	})
}
