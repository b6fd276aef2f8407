// Package errs defines the error taxonomy shared by all financial engines.
// Validation and not-found errors are recoverable by the caller; a
// configuration error means the guideline table cannot answer the lookup
// and the engine must refuse rather than guess.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or out-of-range request input.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Validation builds a ValidationError for a single field.
func Validation(field string, value interface{}, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NotFoundError reports unknown reference data, such as a service code
// that has no entry in the cost registry.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// NotFound builds a NotFoundError for the given reference kind and key.
func NotFound(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// ConfigurationError reports a guideline-table lookup with no safe default,
// e.g. a poverty-level year that has not been configured.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("guideline configuration %s: %s", e.Key, e.Reason)
}

// Configuration builds a ConfigurationError for the given key.
func Configuration(key, reason string) error {
	return &ConfigurationError{Key: key, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// HTTPStatus maps an engine error to the status code the API surfaces.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
