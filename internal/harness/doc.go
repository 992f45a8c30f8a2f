// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package harness boots OS images in QEMU and runs test cases against the
// live guest.
//
// A [Controller] owns a single guest process. It collects the guest's
// console and the emulator's error output into one ordered stream and
// answers pattern waits against it. A [Runner] executes [Suite]s of
// [Case]s, booting a fresh guest for every case so no state leaks from one
// case into the next.
package harness
