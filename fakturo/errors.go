package fakturo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors returned by the Fakturo client.
var (
	// ErrInvalidValue is returned when a value outside a closed set is
	// given to a value type constructor.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnsupportedMethod is returned for HTTP methods outside
	// GET/POST/PUT/DELETE. No request is made.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrInvalidResponse is returned when a response body is not valid
	// JSON where JSON was expected.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInvalidArgument is returned when the caller supplied
	// inconsistent fields. Checked before any network call.
	ErrInvalidArgument = errors.New("invalid argument")
)

// APIError represents a Fakturo API error response
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("fakturo API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ValidationError represents a rejected request, either a plain 422 or a
// response carrying a structured "errors" object.
type ValidationError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fakturo validation error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("fakturo validation error: %s", e.Message)
}

// newFieldValidationError builds a ValidationError from a decoded "errors"
// object, joining each field's messages and separating fields by newlines.
func newFieldValidationError(statusCode int, fields map[string][]string) *ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}

	return &ValidationError{
		StatusCode: statusCode,
		Message:    strings.Join(lines, "\n"),
		Fields:     fields,
	}
}
