// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"time"

	"github.com/ospect/guestprobe/internal/console"
	"github.com/ospect/guestprobe/internal/qemu"
)

const (
	// DefaultTimeout is the default pattern wait timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultBootTimeout bounds waits for a complete boot cycle.
	DefaultBootTimeout = 45 * time.Second

	// DefaultStabilityTimeout bounds long running stability checks.
	DefaultStabilityTimeout = 60 * time.Second

	// DefaultStopGrace is how long [Controller.Stop] waits for the guest to
	// shut down before killing it.
	DefaultStopGrace = 5 * time.Second
)

// Config carries the settings shared by all test cases of a run.
type Config struct {
	// Executable is the emulator binary. It is resolved via PATH.
	Executable string

	// Kernel boots the guest from a kernel binary instead of a disk image.
	Kernel string

	// Initrd is loaded along with Kernel.
	Initrd string

	// Machine is the QEMU machine type. Empty selects QEMU's default.
	Machine string

	// CPU is the CPU model. Empty selects QEMU's default.
	CPU string

	// Memory for the guest in MB. Zero selects QEMU's default.
	Memory uint64

	// DebugCategories enables the emulator's own debug output (-d).
	DebugCategories []string

	// DebugLogPath redirects the emulator's debug output to a file (-D).
	DebugLogPath string

	// TraceEvents enables emulator trace event patterns (-trace).
	TraceEvents []string

	// BaseFlags are raw QEMU flags added to every guest start, before any
	// flags passed to [Controller.Start].
	BaseFlags []string

	// Timeout is the pattern wait timeout used when a wait does not bring
	// its own.
	Timeout time.Duration

	// BootTimeout bounds waits for a complete boot cycle.
	BootTimeout time.Duration

	// StabilityTimeout bounds long running stability checks.
	StabilityTimeout time.Duration

	// StopGrace is how long [Controller.Stop] waits after the terminate
	// request before killing the guest.
	StopGrace time.Duration

	// QueueCapacity is the output queue buffer size in lines.
	QueueCapacity int

	// TailSize is the number of recent output lines kept for diagnostics.
	TailSize int
}

// AddDefaults fills all unset fields with default values.
func (c *Config) AddDefaults() {
	if c.Executable == "" {
		c.Executable = qemu.DefaultExecutable()
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.BootTimeout <= 0 {
		c.BootTimeout = DefaultBootTimeout
	}

	if c.StabilityTimeout <= 0 {
		c.StabilityTimeout = DefaultStabilityTimeout
	}

	if c.StopGrace <= 0 {
		c.StopGrace = DefaultStopGrace
	}

	if c.QueueCapacity <= 0 {
		c.QueueCapacity = console.DefaultCapacity
	}

	if c.TailSize <= 0 {
		c.TailSize = console.DefaultTailSize
	}
}
