// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/YahyaDar/gravity/config"
	"github.com/YahyaDar/gravity/internal/cli"
	"github.com/YahyaDar/gravity/log"
	"github.com/YahyaDar/gravity/sqlbuilder"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *config.Config
	configPath string
	logger     log.Logger
	closeLog   = func() error { return nil }

	// Persistent flags
	cfgFile     string
	dialectName string
	verbose     int
)

var rootCmd = &cobra.Command{
	Use:   "gravity",
	Short: "Dialect-aware SQL statement builder",
	Long: `gravity - dialect-aware SQL statement builder

Gravity replays YAML statement scripts onto a clause builder and renders them
as SELECT, INSERT, REPLACE, UPDATE or DELETE for the chosen SQL dialect.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = config.Load(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		if err := cfg.Validate(); err != nil {
			return cli.ConfigError("validating configuration", err)
		}

		l, closeFn, err := cfg.Logger()
		if err != nil {
			return cli.ConfigError("configuring logger", err)
		}
		switch {
		case verbose > 1:
			l.SetLevel(log.TraceLevel)
		case verbose == 1:
			l.SetLevel(log.DebugLevel)
		}
		logger, closeLog = l, closeFn

		if configPath != "" {
			logger.Debug("configuration loaded", log.F("path", configPath))
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupStatement = "statement"
	groupUtility   = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover gravity.yaml)")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "SQL dialect, overriding the script and the config")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (can be repeated)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupStatement, Title: "Statements:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupStatement
	execCmd.GroupID = groupStatement
	opsCmd.GroupID = groupStatement
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(opsCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > script > config.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveDialect picks the dialect for a script document.
func resolveDialect(scriptDialect string) (sqlbuilder.Dialect, error) {
	name := resolveString(dialectName, scriptDialect, cfg.Dialect)
	d, err := sqlbuilder.Lookup(name)
	if err != nil {
		return nil, cli.ConfigError("resolving dialect", err)
	}
	return d, nil
}
