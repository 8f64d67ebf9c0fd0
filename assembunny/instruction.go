package assembunny

import (
	"fmt"
	"io"
	"slices"

	"github.com/ezrec/aocvm/asm"
)

// REGISTERS is the size of the register file.
const REGISTERS = 4

// Op is an assembunny operation.
type Op int

const (
	OP_CPY = Op(iota) // cpy
	OP_INC            // inc
	OP_DEC            // dec
	OP_JNZ            // jnz
	OP_TGL            // tgl
	OP_OUT            // out
	OP_NOP            // nop

	OPS = 7 // Number of operations.
)

var opNames = [OPS]string{"cpy", "inc", "dec", "jnz", "tgl", "out", "nop"}

func (op Op) String() string {
	if op < 0 || op >= OPS {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Operand is either a literal or a register reference.
type Operand struct {
	Register   int
	Value      int64
	IsRegister bool
}

// Reg returns a register operand.
func Reg(register int) Operand {
	return Operand{Register: register, IsRegister: true}
}

// Imm returns a literal operand.
func Imm(value int64) Operand {
	return Operand{Value: value}
}

func (o Operand) String() string {
	if o.IsRegister {
		return string(rune('a' + o.Register))
	}
	return fmt.Sprintf("%d", o.Value)
}

// Instruction is a decoded assembunny instruction.
// Y is only used by cpy, jnz and nop.
type Instruction struct {
	Op   Op
	X, Y Operand
}

func (ins Instruction) String() string {
	switch ins.Op {
	case OP_CPY, OP_JNZ, OP_NOP:
		return fmt.Sprintf("%v %v %v", ins.Op, ins.X, ins.Y)
	}
	return fmt.Sprintf("%v %v", ins.Op, ins.X)
}

// Toggle returns the instruction that 'tgl' turns this one into.
//
// A jump to a register offset becomes a copy into that register, while a
// jump to a literal offset becomes a nop that keeps its operands, so that
// toggling it again restores the jump.
func (ins Instruction) Toggle() Instruction {
	switch ins.Op {
	case OP_JNZ:
		if ins.Y.IsRegister {
			ins.Op = OP_CPY
		} else {
			ins.Op = OP_NOP
		}
	case OP_CPY, OP_NOP:
		ins.Op = OP_JNZ
	case OP_INC:
		ins.Op = OP_DEC
	case OP_DEC, OP_TGL:
		ins.Op = OP_INC
	case OP_OUT:
		// Never toggled by any known program.
	}
	return ins
}

// Listing is a parsed program.
type Listing struct {
	Instructions []Instruction
	Lines        []int // Source line of each instruction.
}

// LineNo returns the source line for an instruction pointer, or 0.
func (ls *Listing) LineNo(ip int) int {
	if ip < 0 || ip >= len(ls.Lines) {
		return 0
	}
	return ls.Lines[ip]
}

func parseOperand(word string) (o Operand, err error) {
	reg, ok := asm.Register(word, REGISTERS)
	if ok {
		o = Reg(reg)
		return
	}

	value, err := asm.Number(word)
	if err != nil {
		err = asm.ErrParseValue(word)
		return
	}

	o = Imm(value)
	return
}

func parseInstruction(words []string) (ins Instruction, err error) {
	index := slices.Index(opNames[:OP_NOP], words[0])
	if index < 0 {
		err = asm.ErrOpcodeInvalid
		return
	}
	ins.Op = Op(index)

	arity := 1
	switch ins.Op {
	case OP_CPY, OP_JNZ:
		arity = 2
	}

	err = asm.Arity(words, arity)
	if err != nil {
		return
	}

	ins.X, err = parseOperand(words[1])
	if err != nil {
		return
	}
	if arity == 2 {
		ins.Y, err = parseOperand(words[2])
		if err != nil {
			return
		}
	}

	switch {
	case ins.Op == OP_CPY && !ins.Y.IsRegister,
		ins.Op == OP_INC && !ins.X.IsRegister,
		ins.Op == OP_DEC && !ins.X.IsRegister,
		ins.Op == OP_TGL && !ins.X.IsRegister:
		err = ErrTargetInvalid
	}

	return
}

// Assembler parses assembunny program text.
type Assembler struct {
	asm.Scanner
}

// Parse parses an input stream into a Listing.
func (as *Assembler) Parse(input io.Reader) (ls *Listing, err error) {
	ls = &Listing{}

	err = as.Scan(input, func(lineno int, words []string) (err error) {
		ins, err := parseInstruction(words)
		if err != nil {
			return
		}
		ls.Instructions = append(ls.Instructions, ins)
		ls.Lines = append(ls.Lines, lineno)
		return
	})
	if err != nil {
		ls = nil
	}

	return
}

// Parse parses program text with a default assembler.
func Parse(input io.Reader) (ls *Listing, err error) {
	as := &Assembler{}
	return as.Parse(input)
}
