// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd implements the guestprobe command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// IO provides input and output streams for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute runs the guestprobe command with the given arguments and returns
// the process exit code. It is the single entry point used by main.
func Execute(ctx context.Context, args []string, streams IO) int {
	root := newRootCommand(streams)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Check failures are already reported by the run summary and preflight
	// failures by the doctor report. Everything else is printed here.
	if !errors.Is(err, ErrChecksFailed) && !errors.Is(err, ErrPreflightFailed) {
		fmt.Fprintf(streams.Stderr, "Error: %v\n", err)
	}

	return 1
}
