// Package error defines domain-specific errors for the Controle Financeiro API.
package error

import "fmt"

// ErrorCode identifies a domain error independently of its message.
// Format: XXX-YYZZZZ where XXX is the domain, YY the group and ZZZZ the specific error.
type ErrorCode string

// BusinessError represents a violated domain rule.
type BusinessError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new BusinessError with the given code and message.
func NewBusinessError(code ErrorCode, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFoundError is returned when a referenced resource does not exist.
type NotFoundError struct {
	Code     ErrorCode
	Resource string
	ID       int64
	Err      error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s com ID %d não encontrado(a)", e.Resource, e.ID)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NotFoundError for the given resource and id.
func NewNotFoundError(code ErrorCode, resource string, id int64, err error) *NotFoundError {
	return &NotFoundError{
		Code:     code,
		Resource: resource,
		ID:       id,
		Err:      err,
	}
}
