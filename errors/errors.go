// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package errors provides the error types shared by the gravity packages.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Standard errors provides exported error variables for common error cases.
var (
	// ErrMissingTableReference indicates that a statement was rendered without
	// the table reference its kind requires (FROM, INTO or the UPDATE target).
	ErrMissingTableReference = errors.New("missing table reference")

	// ErrUnknownDialect indicates that a dialect name could not be resolved.
	ErrUnknownDialect = errors.New("unknown dialect")

	// ErrConnectionFailed indicates a failure to establish a database connection.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrQueryFailed indicates a failure during query execution.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrValidationFailed indicates a validation failure.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidConfig indicates that configuration could not be loaded or used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error types specific to gravity.
type (
	// Error is the base interface for all gravity-specific errors.
	Error interface {
		error
		GravityError() bool
	}

	// MissingTableReferenceError is returned by the statement renderers when the
	// clause holding the statement's table reference was never set.
	MissingTableReferenceError struct {
		// Clause names the absent clause: "from", "into" or "update".
		Clause string
	}

	// QueryError represents an error that occurs during SQL query execution.
	QueryError struct {
		Query   string
		Message string
		Err     error
	}

	// ConnectionError represents errors that occur when connecting to a database.
	ConnectionError struct {
		Driver  string
		Message string
		Err     error
	}

	// ConfigError represents errors loading or interpreting configuration.
	ConfigError struct {
		Key     string
		Value   interface{}
		Message string
		Err     error
	}

	// ValidationError represents field validation errors for a named subject.
	ValidationError struct {
		Subject string
		Fields  map[string]string
		Err     error
	}

	// ModelError represents an error extracting columns from a record.
	ModelError struct {
		Model   string
		Message string
		Err     error
	}
)

// GravityError identifies this as a gravity error.
func (e *MissingTableReferenceError) GravityError() bool { return true }

// Error returns the error message.
func (e *MissingTableReferenceError) Error() string {
	return fmt.Sprintf("missing table reference: no %s clause", e.Clause)
}

// Is reports whether target is ErrMissingTableReference.
func (e *MissingTableReferenceError) Is(target error) bool {
	return target == ErrMissingTableReference
}

// GravityError identifies this as a gravity error.
func (e *QueryError) GravityError() bool { return true }

// Error returns the error message.
func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("query error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Err }

// Is reports whether target is ErrQueryFailed.
func (e *QueryError) Is(target error) bool { return target == ErrQueryFailed }

// GravityError identifies this as a gravity error.
func (e *ConnectionError) GravityError() bool { return true }

// Error returns the error message.
func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection error (%s): %s: %v", e.Driver, e.Message, e.Err)
	}
	return fmt.Sprintf("connection error (%s): %s", e.Driver, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConnectionFailed.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnectionFailed }

// GravityError identifies this as a gravity error.
func (e *ConfigError) GravityError() bool { return true }

// Error returns the error message.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config error")
	if e.Key != "" {
		fmt.Fprintf(&b, " (%s)", e.Key)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Value != nil {
		fmt.Fprintf(&b, " [%v]", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// WithKey records the configuration key the error refers to.
func (e *ConfigError) WithKey(key string) *ConfigError {
	e.Key = key
	return e
}

// WithValue records the offending value or source.
func (e *ConfigError) WithValue(value interface{}) *ConfigError {
	e.Value = value
	return e
}

// GravityError identifies this as a gravity error.
func (e *ValidationError) GravityError() bool { return true }

// Error returns the error message, listing failed fields in key order.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("validation error (%s): %s", e.Subject, strings.Join(parts, "; "))
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// FieldErrors returns the map of validation errors by field.
func (e *ValidationError) FieldErrors() map[string]string {
	return e.Fields
}

// GravityError identifies this as a gravity error.
func (e *ModelError) GravityError() bool { return true }

// Error returns the error message.
func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model error (%s): %s: %v", e.Model, e.Message, e.Err)
	}
	return fmt.Sprintf("model error (%s): %s", e.Model, e.Message)
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error { return e.Err }

// NewMissingTableReferenceError creates a new MissingTableReferenceError.
func NewMissingTableReferenceError(clause string) *MissingTableReferenceError {
	return &MissingTableReferenceError{Clause: clause}
}

// NewQueryError creates a new QueryError.
func NewQueryError(query, message string, err error) *QueryError {
	return &QueryError{Query: query, Message: message, Err: err}
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(driver, message string, err error) *ConnectionError {
	return &ConnectionError{Driver: driver, Message: message, Err: err}
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, err error) *ConfigError {
	return &ConfigError{Message: message, Err: err}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(subject string, fields map[string]string, err error) *ValidationError {
	return &ValidationError{Subject: subject, Fields: fields, Err: err}
}

// NewModelError creates a new ModelError.
func NewModelError(model, message string, err error) *ModelError {
	return &ModelError{Model: model, Message: message, Err: err}
}

// Is reports whether any error in err's tree matches target.
// It's a wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches the target type.
// It's a wrapper around the standard errors.As function.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
