package duet

import (
	"fmt"
	"io"

	"github.com/ezrec/aocvm/asm"
)

// REGISTERS is the size of a program's register file.
const REGISTERS = 26

// Op is a duet operation.
type Op int

const (
	OP_SND = Op(iota) // snd
	OP_SET            // set
	OP_ADD            // add
	OP_SUB            // sub
	OP_MUL            // mul
	OP_MOD            // mod
	OP_RCV            // rcv
	OP_JGZ            // jgz
	OP_JNZ            // jnz

	OPS = 9 // Number of operations.
)

var opNames = [OPS]string{"snd", "set", "add", "sub", "mul", "mod", "rcv", "jgz", "jnz"}

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

// Instruction is a decoded duet instruction. Y is unused by snd and rcv.
type Instruction struct {
	Op   Op
	X, Y Operand
}

func (ins Instruction) String() string {
	switch ins.Op {
	case OP_SND, OP_RCV:
		return fmt.Sprintf("%v %v", ins.Op, ins.X)
	}
	return fmt.Sprintf("%v %v %v", ins.Op, ins.X, ins.Y)
}

// Listing is a parsed program. It is never modified by execution.
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

// Assembler parses duet program text.
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

func parseInstruction(words []string) (ins Instruction, err error) {
	op := Op(-1)
	for n, name := range opNames {
		if name == words[0] {
			op = Op(n)
			break
		}
	}

	arity := 2
	switch op {
	case -1:
		err = asm.ErrOpcodeInvalid
		return
	case OP_SND, OP_RCV:
		arity = 1
	}

	err = asm.Arity(words, arity)
	if err != nil {
		return
	}

	ins.Op = op
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

	switch op {
	case OP_SET, OP_ADD, OP_SUB, OP_MUL, OP_MOD, OP_RCV:
		if !ins.X.IsRegister {
			err = ErrTargetInvalid
			return
		}
	}

	return
}
