// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

// Channel identifies the guest output stream a [Line] was read from.
type Channel int

const (
	// Stdout is the guest's standard output stream. With the serial console
	// wired to stdio this carries the guest's serial output.
	Stdout Channel = iota

	// Stderr is the emulator's error stream, carrying QEMU's own messages
	// and, with -d, its debug output.
	Stderr
)

// String implements [fmt.Stringer].
func (c Channel) String() string {
	switch c {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Line is a single line of output tagged with its origin.
//
// Seq is the global arrival stamp assigned by the queue. It is strictly
// increasing over all channels and so encodes the observed interleaving.
type Line struct {
	Channel Channel
	Text    string
	Seq     uint64
}
