// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Package config loads gravity settings from defaults, a gravity.yaml file and
// GRAVITY_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/log"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

const (
	// EnvPrefix is prepended to every environment variable override.
	EnvPrefix = "GRAVITY"

	maxWalkDepth = 25
)

// configNames are the file names searched for during discovery, in order.
var configNames = []string{"gravity.yaml", "gravity.yml", "gravity.json"}

// Config is the complete gravity configuration.
type Config struct {
	// Dialect selects the SQL dialect used to build statements
	Dialect string `mapstructure:"dialect" json:"dialect"`

	// Database holds the connection settings used by the session
	Database DatabaseConfig `mapstructure:"database" json:"database"`

	// Logging configures the structured logger
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// Load discovers and loads configuration with precedence
// env > config file > defaults.
//
// It returns the loaded config and the path of the file used, which is empty
// when no file was found.
func Load(explicitPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, "", err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, path, errors.NewConfigError("reading config file", err).WithValue(path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, path, errors.NewConfigError("unmarshaling config", err).WithValue(path)
	}

	return &cfg, path, nil
}

// Default returns the configuration produced when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Dialect: "standard",
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("dialect", d.Dialect)

	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", d.Database.ConnMaxIdleTime)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.colors", false)
	v.SetDefault("logging.report_caller", false)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// findConfigFile returns explicitPath when it exists. Otherwise it walks up
// from the working directory looking for a gravity config file, stopping at a
// .git boundary or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", errors.NewConfigError("config file not found", err).WithValue(explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewConfigError("getting working directory", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// DialectFor resolves the configured dialect.
func (c *Config) DialectFor() (sqlbuilder.Dialect, error) {
	d, err := sqlbuilder.Lookup(c.Dialect)
	if err != nil {
		return nil, errors.NewConfigError("unsupported dialect", err).WithKey("dialect").WithValue(c.Dialect)
	}
	return d, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	fields := map[string]string{}

	if _, err := sqlbuilder.Lookup(c.Dialect); err != nil {
		fields["dialect"] = fmt.Sprintf("unknown dialect %q", c.Dialect)
	}
	c.Database.validate(fields)
	c.Logging.validate(fields)

	if len(fields) > 0 {
		return errors.NewValidationError("config", fields, nil)
	}
	return nil
}

// Logger builds the logger described by the logging section. The returned
// close function releases the log file, if one was opened.
func (c *Config) Logger() (*log.DefaultLogger, func() error, error) {
	out, closeFn, err := c.Logging.GetOutput()
	if err != nil {
		return nil, nil, err
	}
	opts, err := c.Logging.LoggerOptions()
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	opts = append(opts, log.WithOutput(out))
	return log.NewLogger(opts...), closeFn, nil
}
