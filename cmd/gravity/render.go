// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YahyaDar/gravity/internal/cli"
	"github.com/YahyaDar/gravity/internal/script"
	"github.com/YahyaDar/gravity/log"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE...",
	Short: "Render statement scripts to SQL",
	Long: `Render every document of each script and print one statement per line.

The dialect is taken from --dialect, then the document's dialect key, then the
configuration.`,
	Example: `  # Render a script with its own dialect
  gravity render queries/active_users.yaml

  # Render the same script for PostgreSQL
  gravity render --dialect postgres queries/active_users.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		for _, path := range args {
			docs, err := script.Load(path)
			if err != nil {
				return cli.BuildError("loading script", err)
			}

			for i, doc := range docs {
				d, err := resolveDialect(doc.Dialect)
				if err != nil {
					return err
				}

				query, err := doc.Render(d)
				if err != nil {
					return cli.BuildError(fmt.Sprintf("rendering %s document %d", path, i+1), err)
				}

				logger.Debug("statement rendered",
					log.F("script", path),
					log.F("document", i+1),
					log.F("dialect", d.Name()),
				)
				fmt.Fprintf(out, "%s;\n", query)
			}
		}
		return nil
	},
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations a script step may name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range script.Operations() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
