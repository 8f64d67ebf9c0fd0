package assembunny

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/aocvm/asm"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t,
		"cpy 41 a",
		"inc b ; comment",
		"",
		"jnz c -2",
		"tgl d",
		"out $(1 - 1)",
		"dec a",
	)

	assert.Equal([]Instruction{
		{OP_CPY, Imm(41), Reg(0)},
		{OP_INC, Reg(1), Operand{}},
		{OP_JNZ, Reg(2), Imm(-2)},
		{OP_TGL, Reg(3), Operand{}},
		{OP_OUT, Imm(0), Operand{}},
		{OP_DEC, Reg(0), Operand{}},
	}, ls.Instructions)
	assert.Equal([]int{1, 2, 4, 5, 6, 7}, ls.Lines)
	assert.Equal(5, ls.LineNo(3))
	assert.Equal(0, ls.LineNo(6))

	assert.Equal("cpy 41 a", ls.Instructions[0].String())
	assert.Equal("tgl d", ls.Instructions[3].String())
	assert.Equal("nop 1 2", Instruction{OP_NOP, Imm(1), Imm(2)}.String())
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
		err  error
	}){
		{"mnemonic", "mul a b", asm.ErrOpcodeInvalid},
		{"nop", "nop 1 2", asm.ErrOpcodeInvalid},
		{"cpy_arity", "cpy a", asm.ErrOperandCount},
		{"inc_arity", "inc a b", asm.ErrOperandCount},
		{"operand", "jnz e 2", asm.ErrParseValue("e")},
		{"cpy_target", "cpy a 1", ErrTargetInvalid},
		{"inc_target", "inc 1", ErrTargetInvalid},
		{"dec_target", "dec 1", ErrTargetInvalid},
		{"tgl_target", "tgl 2", ErrTargetInvalid},
	}

	for _, entry := range table {
		ls, err := Parse(strings.NewReader("inc a\n" + entry.line))
		assert.Nil(ls, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *asm.ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(2, syntax.LineNo, entry.name)
		}
	}
}

func TestToggle(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		from Instruction
		to   Instruction
	}){
		{Instruction{OP_INC, Reg(0), Operand{}}, Instruction{OP_DEC, Reg(0), Operand{}}},
		{Instruction{OP_DEC, Reg(1), Operand{}}, Instruction{OP_INC, Reg(1), Operand{}}},
		{Instruction{OP_TGL, Reg(2), Operand{}}, Instruction{OP_INC, Reg(2), Operand{}}},
		{Instruction{OP_OUT, Reg(3), Operand{}}, Instruction{OP_OUT, Reg(3), Operand{}}},
		{Instruction{OP_CPY, Imm(1), Reg(0)}, Instruction{OP_JNZ, Imm(1), Reg(0)}},
		{Instruction{OP_JNZ, Imm(1), Reg(0)}, Instruction{OP_CPY, Imm(1), Reg(0)}},
		{Instruction{OP_JNZ, Reg(1), Imm(2)}, Instruction{OP_NOP, Reg(1), Imm(2)}},
		{Instruction{OP_NOP, Reg(1), Imm(2)}, Instruction{OP_JNZ, Reg(1), Imm(2)}},
	}

	for _, entry := range table {
		assert.Equal(entry.to, entry.from.Toggle(), entry.from.String())
	}
}

func TestNop(t *testing.T) {
	assert := assert.New(t)

	// A toggled literal jump does nothing.
	m := NewMachine([]Instruction{
		{OP_NOP, Imm(1), Imm(5)},
		{OP_INC, Reg(0), Operand{}},
	})
	assert.Equal(StatusHalted, m.Run())
	assert.Equal(int64(1), m.Register[0])
	assert.Equal(2, m.Ticks)
}

func FuzzParse(f *testing.F) {
	f.Add("cpy 1 a\ntgl a\njnz a -1")
	f.Add("out a\ninc a\nout a\njnz 1 -3")
	f.Add("tgl 1")

	f.Fuzz(func(t *testing.T, text string) {
		assert := assert.New(t)

		ls, err := Parse(strings.NewReader(text))
		if err != nil {
			assert.Nil(ls)
			return
		}

		// Anything that parses must run to a stop without panicking.
		m := NewMachine(ls.Instructions)
		m.MaxTicks = 1024
		status := m.Run()
		assert.NotEqual(StatusRunning, status)
		assert.LessOrEqual(m.Ticks, m.MaxTicks)
	})
}
