// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

// DefaultLogger is the standard implementation of Logger
type DefaultLogger struct {
	// state shared between a logger and the loggers derived from it
	shared *loggerState

	// Default fields to include in all log entries
	defaultFields Fields
}

type loggerState struct {
	mu     sync.Mutex
	config LoggerConfig
}

// NewLogger creates a new logger with the given options
func NewLogger(options ...Option) *DefaultLogger {
	cfg := LoggerConfig{
		Level:            InfoLevel,
		Outputs:          []io.Writer{os.Stderr},
		Formatter:        NewTextFormatter(),
		ReportCaller:     false,
		CallerSkipFrames: 3,
		EnableColors:     false,
		TimeFormat:       "2006-01-02 15:04:05.000",
		Clock:            SystemClock{},
	}

	for _, option := range options {
		option(&cfg)
	}

	return &DefaultLogger{
		shared:        &loggerState{config: cfg},
		defaultFields: Fields{},
	}
}

// Nop returns a logger that discards everything.
func Nop() *DefaultLogger {
	return NewLogger(WithLevel(SilentLevel), WithOutput(io.Discard))
}

// log creates a log entry and writes it to every output
func (l *DefaultLogger) log(level Level, ctx context.Context, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	l.shared.mu.Lock()
	defer l.shared.mu.Unlock()
	cfg := l.shared.config

	merged := make(Fields, 0, len(l.defaultFields)+len(fields))
	merged = append(merged, l.defaultFields...)
	merged = append(merged, fields...)

	entry := &Entry{
		Time:    cfg.Clock.Now(),
		Level:   level,
		Message: msg,
		Fields:  merged,
		Context: ctx,
		colored: cfg.EnableColors,
	}
	if cfg.ReportCaller {
		entry.Caller = caller(cfg.CallerSkipFrames)
	}

	data, err := cfg.Formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting log entry: %v\n", err)
		return
	}
	for _, output := range cfg.Outputs {
		if _, err := output.Write(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing log entry: %v\n", err)
		}
	}
}

// caller returns information about the calling function
func caller(skip int) *CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return &CallerInfo{File: "unknown", Function: "unknown"}
	}

	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
		if idx := strings.LastIndex(funcName, "."); idx >= 0 {
			funcName = funcName[idx+1:]
		}
	}
	if idx := strings.LastIndex(file, "/"); idx >= 0 {
		file = file[idx+1:]
	}

	return &CallerInfo{File: file, Line: line, Function: funcName}
}

// Enabled reports whether entries at level would be written.
func (l *DefaultLogger) Enabled(level Level) bool {
	return level != SilentLevel && level >= l.GetLevel()
}

// Trace logs a message at the trace level
func (l *DefaultLogger) Trace(msg string, fields ...Field) {
	l.log(TraceLevel, nil, msg, fields...)
}

// Debug logs a message at the debug level
func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, nil, msg, fields...)
}

// Info logs a message at the info level
func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, nil, msg, fields...)
}

// Warn logs a message at the warn level
func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, nil, msg, fields...)
}

// Error logs a message at the error level
func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, nil, msg, fields...)
}

// DebugContext logs a message with context at the debug level
func (l *DefaultLogger) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.log(DebugLevel, ctx, msg, fields...)
}

// ErrorContext logs a message with context at the error level
func (l *DefaultLogger) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ErrorLevel, ctx, msg, fields...)
}

// Debugf logs a formatted message at the debug level
func (l *DefaultLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, nil, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at the info level
func (l *DefaultLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, nil, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at the error level
func (l *DefaultLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, nil, fmt.Sprintf(format, args...))
}

// WithField returns a logger with the given field added
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a logger with the given fields added
func (l *DefaultLogger) WithFields(fields ...Field) Logger {
	derived := &DefaultLogger{
		shared:        l.shared,
		defaultFields: make(Fields, 0, len(l.defaultFields)+len(fields)),
	}
	derived.defaultFields = append(derived.defaultFields, l.defaultFields...)
	derived.defaultFields = append(derived.defaultFields, fields...)
	return derived
}

// WithError returns a logger with the given error added as a field
func (l *DefaultLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// SetLevel sets the minimum severity level to log
func (l *DefaultLogger) SetLevel(level Level) {
	l.shared.mu.Lock()
	defer l.shared.mu.Unlock()
	l.shared.config.Level = level
}

// GetLevel returns the current minimum severity level
func (l *DefaultLogger) GetLevel() Level {
	l.shared.mu.Lock()
	defer l.shared.mu.Unlock()
	return l.shared.config.Level
}
