// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package checks holds the built-in test suites for MTOS images.
//
// The suites are plain [harness.Suite] values. Each case boots its own
// guest with the QEMU debug flags it needs and probes the guest through
// its console output or by watching its liveness.
package checks
