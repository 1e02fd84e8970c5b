package engine

import (
	"errors"
	"fmt"
)

// ErrBusy means the same action already has a call in flight for this target
var ErrBusy = errors.New("action already in progress")

// ValidationError is a local, pre-network failure: the action is blocked and
// no state changes.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
