package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

const (
	DefaultMinLength = 4
	DefaultMaxLength = 20

	FieldLength  = "length"
	FieldOptions = "options"
)

// FieldError is a validation failure tied to a single form field.
// Length failures unwrap to crypto.ErrInvalidLength.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	if e.Field == FieldLength {
		return crypto.ErrInvalidLength
	}
	return nil
}

// LengthValidator enforces the allowed password length range, inclusive.
type LengthValidator struct {
	Min int
	Max int
}

// DefaultLengthValidator accepts lengths 4 through 20.
func DefaultLengthValidator() LengthValidator {
	return LengthValidator{Min: DefaultMinLength, Max: DefaultMaxLength}
}

// ParseLength converts the raw text of the length field and checks its range.
func (v LengthValidator) ParseLength(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, lengthError("Length is required")
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, lengthError("Length must be a number")
	}
	if err := v.Validate(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Validate checks n against the configured range. Zero means the field was left empty.
func (v LengthValidator) Validate(n int) error {
	switch {
	case n == 0:
		return lengthError("Length is required")
	case n < v.Min:
		return lengthError(fmt.Sprintf("Should be min of %d characters", v.Min))
	case n > v.Max:
		return lengthError(fmt.Sprintf("Should be max of %d characters", v.Max))
	}
	return nil
}

func lengthError(msg string) *FieldError {
	return &FieldError{Field: FieldLength, Message: msg}
}
