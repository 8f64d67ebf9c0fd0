package device

import (
	"errors"
	"fmt"
)

// REGISTERS is the size of the register file.
const REGISTERS = 6

// Opcode is one of the sixteen device operations.
type Opcode int

const (
	OP_ADDR = Opcode(iota) // addr
	OP_ADDI                // addi
	OP_MULR                // mulr
	OP_MULI                // muli
	OP_BANR                // banr
	OP_BANI                // bani
	OP_BORR                // borr
	OP_BORI                // bori
	OP_SETR                // setr
	OP_SETI                // seti
	OP_GTIR                // gtir
	OP_GTRI                // gtri
	OP_GTRR                // gtrr
	OP_EQIR                // eqir
	OP_EQRI                // eqri
	OP_EQRR                // eqrr

	OPCODES = 16 // Number of opcodes.
)

var opcodeNames = [OPCODES]string{
	"addr", "addi", "mulr", "muli",
	"banr", "bani", "borr", "bori",
	"setr", "seti",
	"gtir", "gtri", "gtrr",
	"eqir", "eqri", "eqrr",
}

func (op Opcode) String() string {
	if op < 0 || op >= OPCODES {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// OpcodeOf returns the opcode for a mnemonic.
func OpcodeOf(name string) (op Opcode, ok bool) {
	for n, mnemonic := range opcodeNames {
		if mnemonic == name {
			return Opcode(n), true
		}
	}
	return
}

// RegisterA returns true if operand A names a register.
func (op Opcode) RegisterA() bool {
	switch op {
	case OP_SETI, OP_GTIR, OP_EQIR:
		return false
	}
	return true
}

// RegisterB returns true if operand B names a register.
// Operand B of setr and seti is ignored.
func (op Opcode) RegisterB() bool {
	switch op {
	case OP_ADDR, OP_MULR, OP_BANR, OP_BORR, OP_GTIR, OP_GTRR, OP_EQIR, OP_EQRR:
		return true
	}
	return false
}

// Instruction is a decoded opcode with its three operands.
// C is always the destination register.
type Instruction struct {
	Opcode  Opcode
	A, B, C uint64
}

func (ins Instruction) String() string {
	return fmt.Sprintf("%v %d %d %d", ins.Opcode, ins.A, ins.B, ins.C)
}

func b2u(cond bool) uint64 {
	if cond {
		return 1
	}
	return 0
}

// Execute performs a single instruction on a register file.
func Execute(reg *[REGISTERS]uint64, ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(ins), err)
		}
	}()

	op := ins.Opcode
	if op < 0 || op >= OPCODES {
		err = ErrOpcodeInvalid
		return
	}

	if ins.C >= REGISTERS {
		err = ErrRegisterInvalid
		return
	}

	a := ins.A
	if op.RegisterA() {
		if a >= REGISTERS {
			err = ErrRegisterInvalid
			return
		}
		a = reg[a]
	}

	b := ins.B
	if op.RegisterB() {
		if b >= REGISTERS {
			err = ErrRegisterInvalid
			return
		}
		b = reg[b]
	}

	var value uint64
	switch op {
	case OP_ADDR, OP_ADDI:
		value = a + b
	case OP_MULR, OP_MULI:
		value = a * b
	case OP_BANR, OP_BANI:
		value = a & b
	case OP_BORR, OP_BORI:
		value = a | b
	case OP_SETR, OP_SETI:
		value = a
	case OP_GTIR, OP_GTRI, OP_GTRR:
		value = b2u(a > b)
	case OP_EQIR, OP_EQRI, OP_EQRR:
		value = b2u(a == b)
	}

	reg[ins.C] = value

	return
}
