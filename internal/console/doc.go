// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console collects the guest's output streams into a single ordered
// queue of tagged lines.
//
// One reader per stream drains continuously so the guest can never stall on a
// full pipe. Lines keep their per-stream relative order; the two streams may
// interleave arbitrarily. The queue is bounded and discards the oldest line
// on overflow instead of applying backpressure to the guest.
package console
