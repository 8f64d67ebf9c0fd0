package duet

import (
	"errors"

	"github.com/ezrec/aocvm/translate"
)

var f = translate.From

var (
	ErrModuloZero    = errors.New(f("modulo by zero"))
	ErrNoRecovery    = errors.New(f("program ended without recovering a sound"))
	ErrTargetInvalid = errors.New(f("destination must be a register"))
)
