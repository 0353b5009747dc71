package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NewValidationError reports a missing or malformed field. Nothing is written when it is returned.
func NewValidationError(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// NewNotFoundError reports an id that does not resolve to a live row.
func NewNotFoundError(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, code int) bool {
	e, ok := AsStatus(err)
	return ok && e.StatusCode == code
}

// AsStatus finds the user visible error in err's chain
func AsStatus(err error) (*ErrorWithStatusCode, bool) {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StorageError wraps a failure of the underlying database (connectivity, constraint, commit).
// The enclosing transaction is always rolled back when it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorage(err error) bool {
	var e *StorageError
	return errors.As(err, &e)
}
