package config

import (
	"errors"

	"github.com/ezrec/aocvm/translate"
)

var f = translate.From

var (
	ErrKeyUnknown      = errors.New(f("unknown configuration key"))
	ErrModeInvalid     = errors.New(f("mode invalid"))
	ErrRegisterCount   = errors.New(f("too many registers"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)
