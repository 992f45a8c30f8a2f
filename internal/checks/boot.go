// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks

import (
	"time"

	"github.com/ospect/guestprobe/internal/harness"
)

const (
	detailedBootProbe  = 5 * time.Second
	gdtProbe           = 3 * time.Second
	protectedModeProbe = 4 * time.Second
)

// Boot returns the suite that exercises the boot path with the
// emulator's CPU state debugging enabled. The guests must survive their
// probe windows despite the heavier instrumentation.
func Boot() harness.Suite {
	return harness.Suite{
		Name: "boot",
		Cases: []harness.Case{
			DetailedBootTest(),
			GDTTest(),
			ProtectedModeTest(),
		},
	}
}

// DetailedBootTest boots with CPU reset and guest error logging.
func DetailedBootTest() harness.Case {
	return aliveCase(
		"Detailed Boot Test",
		"Verify detailed boot sequence",
		[]string{"-d", "cpu_reset,guest_errors", "-D", "qemu.log"},
		detailedBootProbe,
	)
}

// GDTTest verifies the guest survives loading its descriptor tables.
func GDTTest() harness.Case {
	return aliveCase(
		"GDT Test",
		"Verify GDT is loaded correctly",
		[]string{"-d", "cpu", "-D", "gdt.log"},
		gdtProbe,
	)
}

// ProtectedModeTest verifies the switch into 32-bit protected mode.
func ProtectedModeTest() harness.Case {
	return aliveCase(
		"Protected Mode Test",
		"Verify transition to 32-bit protected mode",
		[]string{"-d", "cpu,int", "-D", "pmode.log"},
		protectedModeProbe,
	)
}
