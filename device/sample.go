package device

import (
	"io"
	"slices"
	"strings"

	"github.com/ezrec/aocvm/asm"
	"github.com/ezrec/aocvm/internal"
)

// Code is an instruction whose opcode is only known by number.
type Code struct {
	Number  uint64
	A, B, C uint64
}

// Sample is an observation of one instruction's effect on the registers.
type Sample struct {
	Before [REGISTERS]uint64
	Code   Code
	After  [REGISTERS]uint64
}

// Candidates returns all opcodes that behave like the sample.
func Candidates(sample Sample) (ops []Opcode) {
	for op := range Opcode(OPCODES) {
		reg := sample.Before
		ins := Instruction{Opcode: op, A: sample.Code.A, B: sample.Code.B, C: sample.Code.C}
		if Execute(&reg, ins) != nil {
			continue
		}
		if reg == sample.After {
			ops = append(ops, op)
		}
	}
	return
}

// Resolve deduces the opcode for every opcode number seen in the samples.
func Resolve(samples []Sample) (table map[uint64]Opcode, err error) {
	possible := map[uint64][]Opcode{}
	for _, sample := range samples {
		ops := Candidates(sample)
		known, ok := possible[sample.Code.Number]
		if ok {
			ops = slices.DeleteFunc(known, func(op Opcode) bool {
				return !slices.Contains(ops, op)
			})
		}
		possible[sample.Code.Number] = ops
	}

	table = make(map[uint64]Opcode, len(possible))
	for len(possible) > 0 {
		progress := false
		for number, ops := range possible {
			if len(ops) != 1 {
				continue
			}
			op := ops[0]
			table[number] = op
			delete(possible, number)
			for other, others := range possible {
				possible[other] = slices.DeleteFunc(others, func(o Opcode) bool { return o == op })
			}
			progress = true
		}
		if !progress {
			table = nil
			err = ErrResolveAmbiguous
			return
		}
	}

	return
}

// Translate converts numbered codes into an unbound Program.
func Translate(codes []Code, table map[uint64]Opcode) (prog *Program, err error) {
	prog = &Program{Bind: -1}
	for _, code := range codes {
		op, ok := table[code.Number]
		if !ok {
			prog = nil
			err = ErrOpcode(Instruction{Opcode: Opcode(code.Number), A: code.A, B: code.B, C: code.C})
			return
		}
		prog.Instructions = append(prog.Instructions, Instruction{Opcode: op, A: code.A, B: code.B, C: code.C})
	}
	return
}

// parseRegisters parses '[3, 2, 1, 1]'.
func parseRegisters(text string) (reg [REGISTERS]uint64, err error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		err = ErrSampleSyntax
		return
	}
	fields := strings.Split(text[1:len(text)-1], ",")
	if len(fields) > REGISTERS {
		err = ErrSampleSyntax
		return
	}
	for n, field := range fields {
		reg[n], err = asm.Unsigned(strings.TrimSpace(field))
		if err != nil {
			return
		}
	}
	return
}

// parseCode parses '<number> <a> <b> <c>'.
func parseCode(line string) (code Code, err error) {
	words := internal.Words(line)
	if len(words) != 4 {
		err = ErrSampleSyntax
		return
	}
	args := [4](*uint64){&code.Number, &code.A, &code.B, &code.C}
	for n, word := range words {
		*args[n], err = asm.Unsigned(word)
		if err != nil {
			return
		}
	}
	return
}

// ParseSamples parses 'Before:', code, 'After:' sample triples, followed
// by an optional numbered program.
func ParseSamples(input io.Reader) (samples []Sample, codes []Code, err error) {
	var sample *Sample
	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &asm.ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for lineno, line = range internal.ReaderLines(input) {
		switch {
		case len(line) == 0:
			if sample != nil {
				err = ErrSampleSyntax
				return
			}
		case strings.HasPrefix(line, "Before:"):
			if sample != nil {
				err = ErrSampleSyntax
				return
			}
			sample = &Sample{}
			sample.Before, err = parseRegisters(strings.TrimPrefix(line, "Before:"))
			if err != nil {
				return
			}
			sample.Code.Number = ^uint64(0)
		case strings.HasPrefix(line, "After:"):
			if sample == nil || sample.Code.Number == ^uint64(0) {
				err = ErrSampleSyntax
				return
			}
			sample.After, err = parseRegisters(strings.TrimPrefix(line, "After:"))
			if err != nil {
				return
			}
			samples = append(samples, *sample)
			sample = nil
		default:
			var code Code
			code, err = parseCode(line)
			if err != nil {
				return
			}
			if sample != nil {
				if sample.Code.Number != ^uint64(0) {
					err = ErrSampleSyntax
					return
				}
				sample.Code = code
			} else {
				codes = append(codes, code)
			}
		}
	}

	if sample != nil {
		err = ErrSampleSyntax
		return
	}

	return
}
