// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ospect/guestprobe/internal/harness"
)

const (
	bootProbe         = 3 * time.Second
	memoryErrorWatch  = 10 * time.Second
	diskActivityWatch = 15 * time.Second
)

// memoryErrorPatterns are emulator messages that indicate the guest
// touched memory it should not have.
var memoryErrorPatterns = []string{
	"segmentation fault",
	"page fault",
	"memory error",
	"invalid",
}

// diskActivityPatterns indicate floppy controller activity, which for
// this guest means the kernel is being read from disk.
var diskActivityPatterns = []string{
	"fdc",
	"disk",
	"read",
	"sector",
}

// Basic returns the default suite with the fundamental boot, memory and
// disk checks.
func Basic() harness.Suite {
	return harness.Suite{
		Name: "basic",
		Cases: []harness.Case{
			BootTest(),
			MemoryTest(),
			DiskIOTest(),
		},
	}
}

// BootTest verifies the guest comes up and keeps executing.
func BootTest() harness.Case {
	return aliveCase(
		"Boot Test",
		"Verify that the OS boots and starts execution",
		nil,
		bootProbe,
	)
}

// MemoryTest watches the emulator's error reporting for memory faults
// during early execution. Silence within the watch window passes.
func MemoryTest() harness.Case {
	return harness.NewCase(
		"Memory Test",
		"Verify memory operations and ELF loading",
		func(ctx context.Context, ctl *harness.Controller) error {
			if err := ctl.Start(ctx, "-d", "guest_errors"); err != nil {
				return err
			}

			line, err := ctl.WaitFor(ctx, memoryErrorPatterns, memoryErrorWatch)
			switch {
			case err == nil:
				return fmt.Errorf("memory error detected: %s", line.Text)
			case errors.Is(err, harness.ErrWaitTimeout):
				return nil
			default:
				return err
			}
		})
}

// DiskIOTest traces the floppy controller and passes on any disk
// activity. A guest that is still running at the end of the watch window
// passes as well, since a booted guest must have read its kernel from
// disk.
func DiskIOTest() harness.Case {
	return harness.NewCase(
		"Disk I/O Test",
		"Verify disk reading functionality",
		func(ctx context.Context, ctl *harness.Controller) error {
			if err := ctl.Start(ctx, "-trace", "fdc_*"); err != nil {
				return err
			}

			_, err := ctl.WaitFor(ctx, diskActivityPatterns, diskActivityWatch)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, harness.ErrWaitTimeout):
				if ctl.Running() {
					return nil
				}

				return errors.New("no disk activity detected and guest gone")
			default:
				return err
			}
		})
}

// aliveCase builds a case that starts the guest with the given flags and
// passes if it is still running after the probe duration.
func aliveCase(
	name string,
	description string,
	flags []string,
	probe time.Duration,
) harness.Case {
	return harness.NewCase(name, description,
		func(ctx context.Context, ctl *harness.Controller) error {
			if err := ctl.Start(ctx, flags...); err != nil {
				return err
			}

			return ctl.AliveFor(ctx, probe)
		})
}
