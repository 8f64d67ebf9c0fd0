package assembunny

import (
	"errors"

	"github.com/ezrec/aocvm/translate"
)

var f = translate.From

var (
	ErrClockBroken   = errors.New(f("clock signal broken"))
	ErrClockNotFound = errors.New(f("no clock signal found"))
	ErrTickLimit     = errors.New(f("tick limit reached"))
	ErrTargetInvalid = errors.New(f("operand must be a register"))
)
