package emulator

import (
	"errors"

	"github.com/ezrec/aocvm/translate"
)

var f = translate.From

var (
	ErrModeInvalid = errors.New(f("mode invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
