// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	debug   bool
	noColor bool
	config  FilePath
}

// loadConfig loads the config file if one was given on the command line.
func (o *rootOptions) loadConfig() (*Config, error) {
	if o.config == "" {
		return nil, nil
	}

	return LoadConfig(string(o.config))
}

func newRootCommand(streams IO) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "guestprobe",
		Short: "QEMU boot test harness for MTOS images",
		Long: `Guestprobe boots an MTOS image in QEMU and runs check suites
against the guest's serial console output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), opts.debug)

			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	root.SetIn(streams.Stdin)
	root.SetOut(streams.Stdout)
	root.SetErr(streams.Stderr)

	root.PersistentFlags().BoolVar(
		&opts.debug,
		"debug",
		false,
		"enable debug logging",
	)
	root.PersistentFlags().BoolVar(
		&opts.noColor,
		"no-color",
		false,
		"disable colored output",
	)
	root.PersistentFlags().Var(
		&opts.config,
		"config",
		"YAML file with QEMU settings, timeouts and custom suites",
	)

	root.AddCommand(
		newRunCommand(opts),
		newListCommand(opts),
		newDoctorCommand(opts),
		newVersionCommand(),
	)

	return root
}
