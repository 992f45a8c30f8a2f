// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build windows

package harness

import "os"

// terminate kills proc. Windows has no graceful termination signal, so
// the grace period is skipped and the process dies immediately.
func terminate(proc *os.Process) error {
	return proc.Kill()
}
