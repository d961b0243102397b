package service

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/tutor_market/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = model.ErrInvalidTransition
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func newValidationError(msg string, fields ...FieldError) error {
	return &ValidationError{Err: errors.New(msg), Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "validation failed"
	}
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Err.Error() + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
