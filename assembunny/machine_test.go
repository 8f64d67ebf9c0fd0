package assembunny

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doParse(t *testing.T, program ...string) *Listing {
	ls, err := Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return ls
}

func TestMachineCopy(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t,
		"cpy 41 a",
		"inc a",
		"inc a",
		"dec a",
		"jnz a 2",
		"dec a",
	)

	a, err := Execute(ls, [REGISTERS]int64{}, 0)
	assert.NoError(err)
	assert.Equal(int64(42), a)
}

func TestMachineToggle(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t,
		"cpy 2 a",
		"tgl a",
		"tgl a",
		"tgl a",
		"cpy 1 a",
		"dec a",
		"dec a",
	)

	m := NewMachine(ls.Instructions)
	status := m.Run()
	assert.Equal(StatusHalted, status)
	assert.Equal(int64(3), m.Register[0])
	assert.Equal(Instruction{OP_JNZ, Imm(1), Reg(0)}, m.Program[4])
	assert.Equal(Instruction{OP_INC, Reg(0), Operand{}}, m.Program[3])
	assert.Equal(Instruction{OP_DEC, Reg(0), Operand{}}, m.Program[6])

	// The listing itself is never rewritten.
	assert.Equal(Instruction{OP_CPY, Imm(1), Reg(0)}, ls.Instructions[4])
}

func TestMachineToggleInPlace(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t, "tgl a", "inc a")

	m := NewMachine(ls.Instructions)
	m.Register[0] = 1
	status := m.Run()
	assert.Equal(StatusHalted, status)
	assert.Equal(Instruction{OP_DEC, Reg(0), Operand{}}, m.Program[1])
	assert.Equal(int64(0), m.Register[0])

	// Run the rewritten instruction again.
	m.Reset()
	m.Register[0] = 5
	m.Ip = 1
	status = m.Run()
	assert.Equal(StatusHalted, status)
	assert.Equal(int64(4), m.Register[0])
}

func TestMachineToggleOutOfRange(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t, "tgl a", "tgl b", "inc c")
	m := NewMachine(ls.Instructions)
	m.Register[0] = 5
	m.Register[1] = -2
	status := m.Run()
	assert.Equal(StatusHalted, status)
	assert.Equal(ls.Instructions, m.Program)
	assert.Equal(int64(1), m.Register[2])
}

func TestMachineNegativeJump(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t, "jnz a -5")
	m := NewMachine(ls.Instructions)
	m.Register[0] = 1

	status := m.Tick()
	assert.Equal(StatusRunning, status)
	assert.GreaterOrEqual(m.Ip, len(m.Program))

	status = m.Tick()
	assert.Equal(StatusHalted, status)
	assert.Equal(1, m.Ticks)

	// A jump to exactly before the start also halts.
	ls = doParse(t, "inc b", "jnz 1 -2", "inc c")
	m = NewMachine(ls.Instructions)
	assert.Equal(StatusHalted, m.Run())
	assert.Equal(3, m.Ip)
	assert.Equal(int64(0), m.Register[2])
}

func TestMachineJumpRegister(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t, "cpy 2 d", "jnz d d", "inc a", "inc b")
	m := NewMachine(ls.Instructions)
	assert.Equal(StatusHalted, m.Run())
	assert.Equal([REGISTERS]int64{0, 1, 0, 2}, m.Register)

	// A zero offset loops in place; only the tick limit stops it.
	ls = doParse(t, "jnz 1 0")
	a, err := Execute(ls, [REGISTERS]int64{7}, 100)
	assert.Equal(ErrTickLimit, err)
	assert.Equal(int64(7), a)
}

func TestMachineClockBroken(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		signal  []int64
	}){
		{"repeat_zero", []string{"out 0", "out 0"}, []int64{0}},
		{"repeat_one", []string{"out 1", "out 0", "out 0"}, []int64{1, 0}},
		{"two", []string{"out 0", "out 2"}, []int64{0}},
		{"negative", []string{"out -1"}, nil},
	}

	for _, entry := range table {
		ls := doParse(t, entry.program...)
		m := NewMachine(ls.Instructions)
		status := m.Run()
		assert.Equal(StatusClockBroken, status, entry.name)
		assert.Equal(entry.signal, m.Signal, entry.name)

		_, err := Execute(ls, [REGISTERS]int64{}, 0)
		assert.Equal(ErrClockBroken, err, entry.name)
	}
}

func TestMachineClockStable(t *testing.T) {
	assert := assert.New(t)

	// Alternate a between 0 and 1 forever.
	ls := doParse(t,
		"out a",
		"inc a",
		"out a",
		"dec a",
		"jnz 1 -4",
	)

	m := NewMachine(ls.Instructions)
	status := m.Run()
	assert.Equal(StatusClockStable, status)
	assert.Equal([]int64{0, 1, 0}, m.Signal)

	// Starting on one works as well.
	m = NewMachine([]Instruction{
		{OP_CPY, Imm(1), Reg(1)},
		{OP_OUT, Reg(1), Operand{}},
		{OP_DEC, Reg(1), Operand{}},
		{OP_OUT, Reg(1), Operand{}},
		{OP_INC, Reg(1), Operand{}},
		{OP_JNZ, Imm(1), Imm(-4)},
	})
	assert.Equal(StatusClockStable, m.Run())
	assert.Equal([]int64{1, 0, 1}, m.Signal)
}

var clockProgram = []string{
	"cpy a d",
	"cpy 4 c",
	"cpy 643 b",
	"inc d",
	"dec b",
	"jnz b -2",
	"dec c",
	"jnz c -5",
	"cpy d a",
	"jnz 0 0",
	"cpy a b",
	"cpy 0 a",
	"cpy 2 c",
	"jnz b 2",
	"jnz 1 6",
	"dec b",
	"dec c",
	"jnz c -4",
	"inc a",
	"jnz 1 -7",
	"cpy 2 b",
	"jnz c 2",
	"jnz 1 4",
	"dec b",
	"dec c",
	"jnz 1 -4",
	"jnz 0 0",
	"out b",
	"jnz a -19",
	"jnz 1 -21",
}

func TestFindClock(t *testing.T) {
	assert := assert.New(t)

	ls := doParse(t, clockProgram...)

	a, err := FindClock(ls, 1000, 0)
	assert.NoError(err)
	assert.Equal(int64(158), a)

	_, err = FindClock(ls, 100, 0)
	assert.Equal(ErrClockNotFound, err)

	_, err = FindClock(doParse(t, "inc a"), 10, 0)
	assert.Equal(ErrClockNotFound, err)
}

func TestMachineString(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	m.Register = [REGISTERS]int64{1, -2, 3, 4}
	assert.Equal("ip=0 a=1 b=-2 c=3 d=4", m.String())
	assert.Equal(StatusHalted, m.Tick())
	assert.Equal("clock stable", StatusClockStable.String())
}
