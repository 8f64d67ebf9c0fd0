// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"io"

	"github.com/ezrec/aocvm/asm"
)

// Assembler parses device program text:
//
//	#ip <register>
//	<mnemonic> <a> <b> <c>
//	...
type Assembler struct {
	asm.Scanner
}

// parseInstruction decodes '<mnemonic> <a> <b> <c>'.
func parseInstruction(words []string) (ins Instruction, err error) {
	op, ok := OpcodeOf(words[0])
	if !ok {
		err = asm.ErrOpcodeInvalid
		return
	}

	err = asm.Arity(words, 3)
	if err != nil {
		return
	}

	args := [3](*uint64){&ins.A, &ins.B, &ins.C}
	for n, word := range words[1:] {
		*args[n], err = asm.Unsigned(word)
		if err != nil {
			return
		}
	}

	ins.Opcode = op

	if ins.C >= REGISTERS ||
		(op.RegisterA() && ins.A >= REGISTERS) ||
		(op.RegisterB() && ins.B >= REGISTERS) {
		err = ErrRegisterInvalid
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (as *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	prog = &Program{Bind: -1}

	err = as.Scan(input, func(lineno int, words []string) (err error) {
		if words[0] == "#ip" {
			if prog.Bind >= 0 {
				return ErrIpDuplicate
			}
			if len(prog.Instructions) != 0 {
				return ErrIpSyntax
			}
			if len(words) != 2 {
				return ErrIpSyntax
			}
			var bind uint64
			bind, err = asm.Unsigned(words[1])
			if err != nil {
				return
			}
			if bind >= REGISTERS {
				return ErrRegisterInvalid
			}
			prog.Bind = int(bind)
			return
		}

		if prog.Bind < 0 {
			return ErrIpMissing
		}

		ins, err := parseInstruction(words)
		if err != nil {
			return
		}

		prog.Instructions = append(prog.Instructions, ins)
		prog.Lines = append(prog.Lines, lineno)
		return
	})
	if err != nil {
		prog = nil
		return
	}

	if prog.Bind < 0 {
		prog = nil
		err = ErrIpMissing
		return
	}

	return
}
