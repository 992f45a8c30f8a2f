// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ospect/guestprobe/internal/console"
)

var (
	// ErrNotRunning is returned for operations that require a started and
	// still running guest.
	ErrNotRunning = errors.New("guest not running")

	// ErrAlreadyStarted is returned if a controller is started twice. A
	// controller is scoped to a single guest boot.
	ErrAlreadyStarted = errors.New("guest already started")

	// ErrImageNotFound is returned if the boot image does not exist or is
	// not a regular file.
	ErrImageNotFound = errors.New("boot image not found")

	// ErrExecutableNotFound is returned if the emulator binary cannot be
	// resolved.
	ErrExecutableNotFound = errors.New("emulator executable not found")

	// ErrWaitTimeout is returned if none of the awaited patterns matched
	// within the wait timeout.
	ErrWaitTimeout = errors.New("timed out waiting for output")

	// ErrGuestExited is returned if the guest terminated while output was
	// still being awaited.
	ErrGuestExited = errors.New("guest exited")

	// ErrNoPatterns is returned if a wait is requested without any
	// patterns.
	ErrNoPatterns = errors.New("no patterns given")
)

// WaitError describes a failed wait for guest output. It carries the
// awaited patterns and the most recent output lines for diagnostics.
type WaitError struct {
	Err      error
	Patterns []string
	Tail     []console.Line
}

// Error implements the [error] interface.
func (e *WaitError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Err.Error())

	if len(e.Patterns) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Patterns, ", "))
	}

	if len(e.Tail) > 0 {
		sb.WriteString("\nlast output:")

		for _, line := range e.Tail {
			fmt.Fprintf(&sb, "\n  [%s] %s", line.Channel, line.Text)
		}
	}

	return sb.String()
}

// Is implements the [errors.Is] interface.
func (*WaitError) Is(other error) bool {
	_, ok := other.(*WaitError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *WaitError) Unwrap() error {
	return e.Err
}

// PanicError describes a panic recovered from a test case.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the [error] interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("test case panicked: %v", e.Value)
}

// Is implements the [errors.Is] interface.
func (*PanicError) Is(other error) bool {
	_, ok := other.(*PanicError)
	return ok
}
