// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	// DisableTimestamp disables the timestamp in the output
	DisableTimestamp bool

	// TimestampFormat sets the format for the timestamp
	TimestampFormat string

	// DisableQuote disables quoting of strings
	DisableQuote bool

	// SortFields sorts fields by key
	SortFields bool
}

// NewTextFormatter creates a new TextFormatter with default settings
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		SortFields:      true,
	}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	if entry.colored {
		b.WriteString(entry.Level.Color())
	}

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = "2006-01-02 15:04:05.000"
		}
		b.WriteString("[")
		b.WriteString(entry.Time.Format(format))
		b.WriteString("] ")
	}

	fmt.Fprintf(b, "[%-5s] ", entry.Level.String())

	if entry.Caller != nil {
		fmt.Fprintf(b, "[%s:%d] ", entry.Caller.File, entry.Caller.Line)
	}

	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		fields := entry.Fields
		if f.SortFields {
			fields = sortFields(fields)
		}
		b.WriteString(" {")
		for i, field := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(field.Key)
			b.WriteString("=")
			f.writeValue(b, field.Value)
		}
		b.WriteString("}")
	}

	if entry.colored {
		b.WriteString("\033[0m")
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// writeValue writes a field value to the buffer
func (f *TextFormatter) writeValue(b *bytes.Buffer, value interface{}) {
	switch v := value.(type) {
	case string:
		if !f.DisableQuote && needsQuoting(v) {
			fmt.Fprintf(b, "%q", v)
		} else {
			b.WriteString(v)
		}
	case error:
		fmt.Fprintf(b, "%q", v.Error())
	default:
		fmt.Fprint(b, v)
	}
}

// needsQuoting returns true if the string contains spaces or special characters
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, " \t\r\n\"=:{},[]")
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	// DisableTimestamp disables the timestamp in the output
	DisableTimestamp bool

	// TimestampFormat sets the format for the timestamp
	TimestampFormat string
}

// NewJSONFormatter creates a new JSONFormatter with default settings
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+4)

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = time.RFC3339Nano
		}
		data["time"] = entry.Time.Format(format)
	}
	data["level"] = entry.Level.String()
	data["msg"] = entry.Message

	if entry.Caller != nil {
		data["caller"] = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	for _, field := range entry.Fields {
		if err, ok := field.Value.(error); ok {
			data[field.Key] = err.Error()
			continue
		}
		data[field.Key] = field.Value
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry to JSON: %w", err)
	}
	return append(encoded, '\n'), nil
}

// sortFields sorts fields by key
func sortFields(fields Fields) Fields {
	sorted := make(Fields, len(fields))
	copy(sorted, fields)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	return sorted
}

// WithLevel returns an option to set the minimum severity level to log
func WithLevel(level Level) Option {
	return func(cfg *LoggerConfig) {
		cfg.Level = level
	}
}

// WithOutput returns an option to set the output destination
func WithOutput(output io.Writer) Option {
	return func(cfg *LoggerConfig) {
		cfg.Outputs = []io.Writer{output}
	}
}

// WithFormatter returns an option to set the formatter
func WithFormatter(formatter Formatter) Option {
	return func(cfg *LoggerConfig) {
		cfg.Formatter = formatter
	}
}

// WithColors returns an option to enable or disable colors
func WithColors(enable bool) Option {
	return func(cfg *LoggerConfig) {
		cfg.EnableColors = enable
	}
}

// WithCaller returns an option to enable or disable caller information
func WithCaller(enable bool) Option {
	return func(cfg *LoggerConfig) {
		cfg.ReportCaller = enable
	}
}

// WithTimeFormat returns an option to set the text timestamp layout
func WithTimeFormat(layout string) Option {
	return func(cfg *LoggerConfig) {
		cfg.TimeFormat = layout
		if tf, ok := cfg.Formatter.(*TextFormatter); ok {
			tf.TimestampFormat = layout
		}
	}
}

// WithClock returns an option to replace the timestamp source
func WithClock(clock Clock) Option {
	return func(cfg *LoggerConfig) {
		cfg.Clock = clock
	}
}
