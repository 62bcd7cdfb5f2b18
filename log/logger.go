// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package log provides the leveled, structured logger used by the gravity
// session and CLI.
package log

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/YahyaDar/gravity/errors"
)

// Level represents the severity level of a log message
type Level int

const (
	// TraceLevel represents extremely detailed information
	TraceLevel Level = iota
	// DebugLevel represents debug information, such as every rendered statement
	DebugLevel
	// InfoLevel represents general operational information
	InfoLevel
	// WarnLevel represents non-critical issues that should be addressed
	WarnLevel
	// ErrorLevel represents errors that might still allow the application to continue
	ErrorLevel
	// FatalLevel represents severe errors that prevent further execution
	FatalLevel
	// SilentLevel disables all logging when used
	SilentLevel
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case SilentLevel:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// Color returns ANSI color code for the log level
func (l Level) Color() string {
	switch l {
	case TraceLevel:
		return "\033[37m"
	case DebugLevel:
		return "\033[36m"
	case InfoLevel:
		return "\033[32m"
	case WarnLevel:
		return "\033[33m"
	case ErrorLevel:
		return "\033[31m"
	case FatalLevel:
		return "\033[35m"
	default:
		return "\033[0m"
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	case "silent", "off", "none":
		return SilentLevel, nil
	}
	return InfoLevel, errors.NewConfigError("unknown log level", nil).WithValue(name)
}

// Field represents a key-value pair in a structured log entry
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Fields is a collection of Field objects
type Fields []Field

// Logger is the interface consumed by the rest of the module
type Logger interface {
	Trace(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	DebugContext(ctx context.Context, msg string, fields ...Field)
	ErrorContext(ctx context.Context, msg string, fields ...Field)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// With methods to create derived loggers
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
	WithError(err error) Logger

	SetLevel(level Level)
	GetLevel() Level
	Enabled(level Level) bool
}

// Formatter defines the interface for formatting log entries
type Formatter interface {
	// Format converts a log entry into a byte slice
	Format(entry *Entry) ([]byte, error)
}

// Entry represents a single log entry
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  Fields
	Context context.Context
	Caller  *CallerInfo

	// colored is set when the owning logger enables ANSI colors
	colored bool
}

// CallerInfo contains information about the source code location of a log call
type CallerInfo struct {
	File     string
	Line     int
	Function string
}

// Option represents a configuration option for the logger
type Option func(*LoggerConfig)

// LoggerConfig holds the configuration for a logger
type LoggerConfig struct {
	// Level is the minimum severity level to log
	Level Level

	// Output destinations for log entries
	Outputs []io.Writer

	// Formatter to use for log entries
	Formatter Formatter

	// ReportCaller determines if the caller information should be included
	ReportCaller bool

	// CallerSkipFrames is the number of frames to skip when reporting caller
	CallerSkipFrames int

	// EnableColors enables ANSI color codes in the output
	EnableColors bool

	// TimeFormat is the format for time stamps
	TimeFormat string

	// Clock supplies entry timestamps
	Clock Clock
}

// Clock represents a time source
type Clock interface {
	Now() time.Time
}

// SystemClock is the standard clock using system time
type SystemClock struct{}

// Now returns the current system time
func (c SystemClock) Now() time.Time {
	return time.Now()
}
