// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the guestprobe version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildInfo, ok := debug.ReadBuildInfo()
			if !ok {
				return ErrReadBuildInfo
			}

			fmt.Fprintf(cmd.OutOrStdout(), "guestprobe %s (%s)\n",
				buildInfo.Main.Version, buildInfo.GoVersion)

			return nil
		},
	}
}
