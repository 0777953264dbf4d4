package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports which field of a request was rejected and why,
// so callers can correct the request instead of guessing.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
