// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

// Command gravity renders YAML statement scripts to SQL and optionally runs
// them against a database.
//
// Usage:
//
//	gravity [--config FILE] [--dialect NAME] <command>
//
// Commands:
//   - render: print the SQL for each document of a script
//   - exec: render a script and execute it through the configured connection
//   - ops: list the operations a script step may name
//   - config show: print the effective configuration
//   - version: print build information
package main

import (
	"os"

	"github.com/YahyaDar/gravity/internal/cli"
)

func main() {
	os.Exit(cli.Report(os.Stderr, Execute()))
}
