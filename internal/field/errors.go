package field

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	InvalidPhone   Kind = "invalid_phone"
	InvalidEmail   Kind = "invalid_email"
	InvalidDate    Kind = "invalid_date"
	InvalidAddress Kind = "invalid_address"
	InvalidName    Kind = "invalid_name"
)

// Sentinel errors matched by errors.Is against a ValidationError of the same kind.
var (
	ErrInvalidPhone   = errors.New("field: phone number must be 10 digits")
	ErrInvalidEmail   = errors.New("field: invalid email format")
	ErrInvalidDate    = errors.New("field: invalid date format, use DD.MM.YYYY")
	ErrInvalidAddress = errors.New("field: address cannot be empty")
	ErrInvalidName    = errors.New("field: name cannot be empty")
)

var sentinels = map[Kind]error{
	InvalidPhone:   ErrInvalidPhone,
	InvalidEmail:   ErrInvalidEmail,
	InvalidDate:    ErrInvalidDate,
	InvalidAddress: ErrInvalidAddress,
	InvalidName:    ErrInvalidName,
}

// ValidationError reports a value that failed field validation.
type ValidationError struct {
	Kind  Kind
	Value string // The rejected input.
}

func (e *ValidationError) Error() string {
	if s, ok := sentinels[e.Kind]; ok {
		return fmt.Sprintf("%s: %q", s, e.Value)
	}
	return fmt.Sprintf("field: %s: %q", e.Kind, e.Value)
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ValidationError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func invalid(kind Kind, value string) error {
	return &ValidationError{Kind: kind, Value: value}
}
