// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/log"
)

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	// Driver is the database/sql driver name; empty uses the dialect's driver
	Driver string `mapstructure:"driver" json:"driver"`

	// DSN is the database connection string
	DSN string `mapstructure:"dsn" json:"dsn"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `mapstructure:"max_open_conns" json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `mapstructure:"max_idle_conns" json:"max_idle_conns"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" json:"conn_max_lifetime"`

	// ConnMaxIdleTime is the maximum amount of time a connection may be idle
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" json:"conn_max_idle_time"`
}

func (c *DatabaseConfig) validate(fields map[string]string) {
	if c.MaxOpenConns < 0 {
		fields["database.max_open_conns"] = "cannot be negative"
	}
	if c.MaxIdleConns < 0 {
		fields["database.max_idle_conns"] = "cannot be negative"
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		fields["database.max_idle_conns"] = "cannot exceed max_open_conns"
	}
	if c.ConnMaxLifetime < 0 {
		fields["database.conn_max_lifetime"] = "cannot be negative"
	}
}

// Redacted returns a copy with the password portion of the DSN masked.
func (c DatabaseConfig) Redacted() DatabaseConfig {
	c.DSN = redactDSN(c.DSN)
	return c
}

// redactDSN masks the password in URL style (user:pass@host) and key/value
// style (password=...) connection strings.
func redactDSN(dsn string) string {
	if at := strings.LastIndex(dsn, "@"); at > 0 {
		head := dsn[:at]
		start := strings.Index(head, "://") + 3
		if start < 3 {
			start = 0
		}
		if colon := strings.Index(head[start:], ":"); colon >= 0 {
			return head[:start+colon+1] + "****" + dsn[at:]
		}
	}

	parts := strings.Fields(dsn)
	for i, p := range parts {
		if strings.HasPrefix(strings.ToLower(p), "password=") {
			parts[i] = "password=****"
		}
	}
	if len(parts) > 1 {
		return strings.Join(parts, " ")
	}
	return dsn
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	// Level is the minimum severity level to log
	Level string `mapstructure:"level" json:"level"`

	// Format is the log format (text, json)
	Format string `mapstructure:"format" json:"format"`

	// Output is the log output destination (stdout, stderr, file, discard)
	Output string `mapstructure:"output" json:"output"`

	// FilePath is the path to the log file when Output is "file"
	FilePath string `mapstructure:"file_path" json:"file_path"`

	// Colors enables or disables ANSI colors
	Colors bool `mapstructure:"colors" json:"colors"`

	// ReportCaller enables or disables caller information
	ReportCaller bool `mapstructure:"report_caller" json:"report_caller"`

	// TimeFormat is the format for timestamps
	TimeFormat string `mapstructure:"time_format" json:"time_format"`
}

func (c *LoggingConfig) validate(fields map[string]string) {
	if _, err := log.ParseLevel(c.Level); err != nil {
		fields["logging.level"] = "unknown level " + c.Level
	}
	switch c.Format {
	case "", "text", "json":
	default:
		fields["logging.format"] = "must be text or json"
	}
	switch c.Output {
	case "", "stdout", "stderr", "discard":
	case "file":
		if c.FilePath == "" {
			fields["logging.file_path"] = "cannot be empty when output is file"
		}
	default:
		fields["logging.output"] = "must be stdout, stderr, file or discard"
	}
}

// LoggerOptions builds logger options from the logging configuration
func (c *LoggingConfig) LoggerOptions() ([]log.Option, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.NewConfigError("invalid log level", err).WithKey("logging.level").WithValue(c.Level)
	}

	options := []log.Option{log.WithLevel(level)}

	if c.Format == "json" {
		options = append(options, log.WithFormatter(log.NewJSONFormatter()))
	} else {
		options = append(options, log.WithFormatter(log.NewTextFormatter()))
		if c.TimeFormat != "" {
			options = append(options, log.WithTimeFormat(c.TimeFormat))
		}
	}

	options = append(options, log.WithColors(c.Colors), log.WithCaller(c.ReportCaller))
	return options, nil
}

// GetOutput returns the log writer and a function releasing it.
func (c *LoggingConfig) GetOutput() (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch c.Output {
	case "stdout":
		return os.Stdout, noop, nil
	case "discard":
		return io.Discard, noop, nil
	case "file":
		if c.FilePath == "" {
			return nil, nil, errors.NewConfigError("log file path cannot be empty", nil).WithKey("logging.file_path")
		}
		f, err := os.OpenFile(c.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.NewConfigError("opening log file", err).WithKey("logging.file_path").WithValue(c.FilePath)
		}
		return f, f.Close, nil
	default:
		return os.Stderr, noop, nil
	}
}
