// Package validation holds the field-level rules shared by the shop entities.
// Rules are pure: they report violations and never touch storage.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrMissing       = errors.New("is required")
	ErrNotNumeric    = errors.New("must contain only digits")
	ErrWrongLength   = errors.New("has wrong length")
	ErrInvalidEmail  = errors.New("is not a valid email address")
	ErrInvalidChoice = errors.New("is not a valid choice")
)

// FieldError ties a rule violation to the entity field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Errors collects every violation found on an entity so a caller can surface
// all of them at once instead of stopping at the first.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// NumericString checks that value consists of decimal digits only and, when
// requiredLength is positive, that it has exactly that many digits.
func NumericString(value string, requiredLength int) error {
	for _, r := range value {
		if r < '0' || r > '9' {
			return ErrNotNumeric
		}
	}
	if requiredLength > 0 && len(value) != requiredLength {
		return fmt.Errorf("%w: want %d digits, got %d", ErrWrongLength, requiredLength, len(value))
	}
	return nil
}

// Email delegates syntax checking to net/mail. Addresses with a display name
// ("Jan <jan@example.com>") are rejected: only the bare address form is valid.
func Email(value string) error {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return ErrInvalidEmail
	}
	return nil
}
