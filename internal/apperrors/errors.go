package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates that an operation was rejected by a business rule
// (insufficient stock, edit/delete window expired, reversed date range, ...).
var ErrBusinessRule = errors.New("business rule violation")

// ErrInternal indicates an unexpected failure in a store or adapter call.
var ErrInternal = errors.New("internal error")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError carries a structured payload alongside one of the closed error
// kinds above. Callers match the kind with errors.Is; handlers map kinds to
// HTTP statuses.
type AppError struct {
	Kind    error  // one of the sentinel kinds above
	Field   string // offending field or reference, if any
	Message string
	Err     error // wrapped cause, if any
}

func (e *AppError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (field %s): %v", e.Kind, e.Message, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is makes errors.Is(err, ErrValidation) etc. work on wrapped AppErrors.
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation builds a validation error naming the offending field.
func NewValidation(field, message string) *AppError {
	return &AppError{Kind: ErrValidation, Field: field, Message: message}
}

// NewNotFound builds a not-found error for the given resource.
func NewNotFound(resource, id string) *AppError {
	return &AppError{Kind: ErrNotFound, Field: resource, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewBusinessRule builds a business-rule violation with a caller-facing message.
func NewBusinessRule(message string) *AppError {
	return &AppError{Kind: ErrBusinessRule, Message: message}
}

// NewInternal wraps an unclassified store/adapter failure.
func NewInternal(message string, err error) *AppError {
	return &AppError{Kind: ErrInternal, Message: message, Err: err}
}
