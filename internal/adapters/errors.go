package adapters

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("required field missing")
	ErrBadShape     = errors.New("unexpected payload shape")
)

// DecodeError reports a wire record that could not be adapted.
type DecodeError struct {
	Entity string
	Field  string
	Index  int // position within a list, -1 for single records
	Err    error
}

func (e *DecodeError) Error() string {
	loc := e.Entity
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Entity, e.Index)
	}
	if e.Field != "" {
		return fmt.Sprintf("decode %s: %s: %v", loc, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", loc, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}
