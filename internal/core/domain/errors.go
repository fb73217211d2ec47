package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStreamNotFound     = errors.New("stream not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStreamID    = errors.New("invalid stream id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// MissingFieldError reports a required field absent from a record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// IsValidationError reports whether err is a store/record validation
// failure as opposed to not-found or an unexpected store error.
func IsValidationError(err error) bool {
	var mf *MissingFieldError
	return errors.As(err, &mf) || errors.Is(err, ErrInvalidStreamID)
}
