// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build unix

package harness

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminate asks proc to shut down gracefully.
func terminate(proc *os.Process) error {
	return proc.Signal(unix.SIGTERM)
}
