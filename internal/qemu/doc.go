// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing QEMU system virtualization
// commands for booting small OS images under test. It expects the required
// QEMU binary to be present on the system.
//
// The guest is driven black-box. Its serial console is wired to the host
// process's stdio, video output is disabled and reboot on crash as well as
// shutdown on halt are suppressed, so failures stay observable in the output
// streams instead of restarting silently.
package qemu
