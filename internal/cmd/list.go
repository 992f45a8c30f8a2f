// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ospect/guestprobe/internal/checks"
)

func newListCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available check suites",
		Long: `List shows all built-in check suites. With --config, suites
defined in the config file are included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileConfig, err := root.loadConfig()
			if err != nil {
				return err
			}

			suites := checks.Suites()
			if fileConfig != nil {
				suites = append(suites, fileConfig.Suites...)
			}

			writer := table.NewWriter()
			writer.SetOutputMirror(cmd.OutOrStdout())
			writer.SetStyle(table.StyleLight)
			writer.AppendHeader(table.Row{"Suite", "Check", "Description"})

			for _, suite := range suites {
				for _, testCase := range suite.Cases {
					writer.AppendRow(table.Row{
						suite.Name,
						testCase.Name(),
						testCase.Description(),
					})
				}
			}

			writer.Render()

			return nil
		},
	}
}
