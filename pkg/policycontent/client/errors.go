package client

import (
	"fmt"

	"github.com/medassn/policy-content/pkg/policycontent"
)

// APIError is a transport-level failure from the backend. Message holds the
// server-supplied error text when the error body was parseable, otherwise a
// generic HTTP-status message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// ValidationError is returned when local validation rejects an input before
// any request is issued.
type ValidationError struct {
	Result policycontent.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d invalid field(s)", policycontent.ErrValidationFailed, len(e.Result.Errors))
}

func (e *ValidationError) Unwrap() error {
	return policycontent.ErrValidationFailed
}
