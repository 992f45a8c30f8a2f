// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"runtime"
	"strconv"
	"strings"
)

const (
	imageFormatRaw   = "raw"
	imageFormatQCOW2 = "qcow2"
)

// CommandSpec defines the parameters of a QEMU invocation.
//
// Exactly one boot method must be configured: either a bootable disk image
// attached as floppy drive, or a kernel booted directly with an optional
// initrd.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the bootable OS image. It is attached as the first floppy
	// drive, the way small hobby OS images are usually booted.
	Image string

	// Format of the OS image. Defaults to "raw".
	ImageFormat string

	// Path to a kernel to boot directly instead of an image.
	Kernel string

	// Path to an initrd for direct kernel boot.
	Initrd string

	// QEMU machine type to use. Depends on the QEMU binary used.
	Machine string

	// CPU type to use. Depends on machine type and QEMU binary used.
	CPU string

	// Memory for the machine in MB.
	Memory uint64

	// Debug log categories, joined into a single -d argument.
	DebugCategories []string

	// Path the QEMU debug log is written to (-D). Requires debug categories
	// or trace events to produce anything.
	DebugLogPath string

	// Trace event patterns, passed as repeated -trace arguments.
	TraceEvents []string

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the spec
	// itself or an error is returned on [CommandSpec.Build].
	ExtraArgs []Argument
}

// DefaultExecutable returns the conventional name of the QEMU binary for
// i386 guests on the current platform.
func DefaultExecutable() string {
	name := "qemu-system-i386"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	return name
}

// AddDefaults fills unset fields that have well-known defaults.
func (s *CommandSpec) AddDefaults() {
	if s.Executable == "" {
		s.Executable = DefaultExecutable()
	}

	if s.ImageFormat == "" {
		s.ImageFormat = imageFormatRaw
	}
}

// Validate checks for missing required fields and known incompatibilities.
func (s *CommandSpec) Validate() error {
	if s.Executable == "" {
		return &ArgumentError{"executable must not be empty"}
	}

	switch {
	case s.Image == "" && s.Kernel == "":
		return &ArgumentError{"either image or kernel must be set"}
	case s.Image != "" && s.Kernel != "":
		return &ArgumentError{"image and kernel are mutually exclusive"}
	case s.Initrd != "" && s.Kernel == "":
		return &ArgumentError{"initrd requires kernel"}
	}

	if s.Image != "" {
		switch s.ImageFormat {
		case imageFormatRaw, imageFormatQCOW2:
		default:
			return &ArgumentError{
				"unknown image format: " + s.ImageFormat,
			}
		}
	}

	if s.DebugLogPath != "" &&
		len(s.DebugCategories) == 0 && len(s.TraceEvents) == 0 {
		return &ArgumentError{
			"debug log path requires debug categories or trace events",
		}
	}

	return nil
}

// arguments compiles the argument list for the QEMU command.
func (s *CommandSpec) arguments() []Argument {
	var args []Argument

	if s.Image != "" {
		drive := strings.Join([]string{
			"file=" + s.Image,
			"index=0",
			"if=floppy",
			"format=" + s.ImageFormat,
		}, ",")
		args = append(args, RepeatableArg("drive", drive))
	}

	if s.Kernel != "" {
		args = append(args, UniqueArg("kernel", s.Kernel))
	}

	if s.Initrd != "" {
		args = append(args, UniqueArg("initrd", s.Initrd))
	}

	if s.Machine != "" {
		args = append(args, UniqueArg("machine", s.Machine))
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if s.Memory != 0 {
		args = append(args, UniqueArg("m", strconv.FormatUint(s.Memory, 10)))
	}

	args = append(args,
		RepeatableArg("serial", "stdio"),
		UniqueArg("display", "none"),
		// Keep crashed or halted guests around for observation.
		UniqueArg("no-reboot"),
		UniqueArg("no-shutdown"),
	)

	if len(s.DebugCategories) > 0 {
		args = append(args, UniqueArg("d", s.DebugCategories...))
	}

	if s.DebugLogPath != "" {
		args = append(args, UniqueArg("D", s.DebugLogPath))
	}

	for _, event := range s.TraceEvents {
		args = append(args, RepeatableArg("trace", event))
	}

	return append(args, s.ExtraArgs...)
}

// Build validates the spec and compiles the complete argument string slice
// for [os/exec.Command].
func (s *CommandSpec) Build() ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return BuildArgumentStrings(s.arguments())
}
