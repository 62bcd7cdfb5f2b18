// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrorFormatter defines the interface for formatting errors
type ErrorFormatter interface {
	// Format converts an error into a formatted string representation
	Format(err error) string

	// FormatJSON returns a JSON representation of the error
	FormatJSON(err error) ([]byte, error)
}

// DefaultFormatter renders an error, its wrapped causes and the context carried
// by gravity error types.
type DefaultFormatter struct {
	// IncludeTimestamp determines if timestamps should be included in error messages
	IncludeTimestamp bool

	// IncludeCauses lists every error of the Unwrap chain below the top one
	IncludeCauses bool

	// MaxDepth bounds the number of causes listed
	MaxDepth int

	// Now is the clock used for timestamps
	Now func() time.Time
}

// NewDefaultFormatter creates a new DefaultFormatter with recommended settings
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{
		IncludeTimestamp: false,
		IncludeCauses:    true,
		MaxDepth:         10,
		Now:              time.Now,
	}
}

// Format converts an error into a formatted string representation
func (f *DefaultFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var buffer bytes.Buffer

	if f.IncludeTimestamp {
		buffer.WriteString(fmt.Sprintf("[%s] ", f.now().UTC().Format("2006-01-02 15:04:05")))
	}

	buffer.WriteString(err.Error())

	for k, v := range errorContext(err) {
		buffer.WriteString(fmt.Sprintf("\n  %s: %v", k, v))
	}

	if f.IncludeCauses {
		for i, cause := range causes(err, f.MaxDepth) {
			buffer.WriteString(fmt.Sprintf("\n  cause %d: %s", i+1, cause.Error()))
		}
	}

	return buffer.String()
}

// FormatJSON returns a JSON representation of the error
func (f *DefaultFormatter) FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return []byte("null"), nil
	}

	errorMap := map[string]interface{}{
		"message": err.Error(),
		"type":    fmt.Sprintf("%T", err),
	}

	if f.IncludeTimestamp {
		errorMap["time"] = f.now().UTC().Format(time.RFC3339)
	}

	if ctx := errorContext(err); len(ctx) > 0 {
		errorMap["context"] = ctx
	}

	if f.IncludeCauses {
		list := causes(err, f.MaxDepth)
		if len(list) > 0 {
			messages := make([]string, len(list))
			for i, c := range list {
				messages[i] = c.Error()
			}
			errorMap["causes"] = messages
		}
	}

	return json.MarshalIndent(errorMap, "", "  ")
}

func (f *DefaultFormatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// errorContext extracts the structured fields of the first gravity error in the chain.
func errorContext(err error) map[string]interface{} {
	var (
		missing *MissingTableReferenceError
		query   *QueryError
		conn    *ConnectionError
		cfg     *ConfigError
		valid   *ValidationError
	)

	switch {
	case errors.As(err, &missing):
		return map[string]interface{}{"clause": missing.Clause}
	case errors.As(err, &query):
		if query.Query == "" {
			return nil
		}
		return map[string]interface{}{"query": query.Query}
	case errors.As(err, &conn):
		return map[string]interface{}{"driver": conn.Driver}
	case errors.As(err, &cfg):
		if cfg.Key == "" {
			return nil
		}
		return map[string]interface{}{"key": cfg.Key}
	case errors.As(err, &valid):
		return map[string]interface{}{"fields": len(valid.Fields)}
	}
	return nil
}

// causes returns the errors wrapped below err, outermost first.
func causes(err error, maxDepth int) []error {
	var list []error
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		if maxDepth > 0 && len(list) >= maxDepth {
			break
		}
		list = append(list, cause)
	}
	return list
}

// PrettyFormat returns a human-readable formatted error message
func PrettyFormat(err error) string {
	return NewDefaultFormatter().Format(err)
}

// JSONFormat returns a JSON representation of the error
func JSONFormat(err error) (string, error) {
	data, err := NewDefaultFormatter().FormatJSON(err)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
