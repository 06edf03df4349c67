// Package service implements the operations of the booking system: venue,
// event and booking management with cross-entity invariant checks, input
// validation and image handling. Handlers stay thin; everything a caller
// may rely on lives here.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// go-playground/validator suggests using a single instance of the
// validator; it caches struct metadata so sharing it is also the fast
// path.
var validate = validator.New()

func init() {
	// "phone" accepts the loose phone formats customers actually type:
	// digits with optional +, spaces, dots, parentheses and dashes.
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return isPhone(fl.Field().String())
	})
}

// isPhone reports whether s looks like a phone number.  At least one
// digit is required; the remaining characters are limited to common
// phone punctuation.
func isPhone(s string) bool {
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '.' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return true
}

// ValidationError marks a user-correctable input failure.  Handlers
// translate it into an HTTP 400 response carrying the message.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError from a plain message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validateStruct runs the shared validator over in and folds field
// failures into a single ValidationError listing every offending field,
// so the caller can correct all of them in one round.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s fails the %s rule", fe.Field(), fe.Tag()))
		}
		return NewValidationError(strings.Join(msgs, "; "))
	}
	return err
}
