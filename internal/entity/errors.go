package entity

import (
	"errors"
	"fmt"
)

// ValidationError means caller-supplied data violates a business rule.
// The enclosing operation has been rolled back completely.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity id does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFoundf builds a NotFoundError with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// IntegrityError means the store rejected a write with a constraint
// violation the business layer did not anticipate. It is propagated after
// rollback, never swallowed.
type IntegrityError struct {
	Err error
}

func (e *IntegrityError) Error() string { return "integrity violation: " + e.Err.Error() }

func (e *IntegrityError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
