package device

import (
	"errors"

	"github.com/ezrec/aocvm/translate"
)

var f = translate.From

var (
	// Device errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))

	// Assembler errors
	ErrIpMissing   = errors.New(f("#ip declaration missing"))
	ErrIpDuplicate = errors.New(f("#ip declaration duplicated"))
	ErrIpSyntax    = errors.New(f("#ip syntax"))

	// Sample errors
	ErrSampleSyntax     = errors.New(f("sample syntax"))
	ErrResolveAmbiguous = errors.New(f("opcode numbers are ambiguous"))
)

type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad instruction %v", Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
