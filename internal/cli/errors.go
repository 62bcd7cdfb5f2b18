// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package cli holds helpers shared by the gravity command.
package cli

import (
	"fmt"
	"io"

	"github.com/YahyaDar/gravity/errors"
)

// Exit codes returned by the gravity command.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitConfig  = 2
	ExitBuild   = 3
	ExitDB      = 4
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// BuildError creates an ExitError with ExitBuild code.
func BuildError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitBuild, Message: msg, Err: err}
}

// DBError creates an ExitError with ExitDB code.
func DBError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitDB, Message: msg, Err: err}
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}

// Report prints err to w and returns the exit code it maps to. Errors that
// are not ExitErrors are classified by their gravity sentinel.
func Report(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintln(w, "Error:", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, errors.ErrInvalidConfig), errors.Is(err, errors.ErrValidationFailed), errors.Is(err, errors.ErrUnknownDialect):
		return ExitConfig
	case errors.Is(err, errors.ErrMissingTableReference):
		return ExitBuild
	case errors.Is(err, errors.ErrConnectionFailed), errors.Is(err, errors.ErrQueryFailed):
		return ExitDB
	}
	return ExitGeneral
}
