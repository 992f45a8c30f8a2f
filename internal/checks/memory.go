// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks

import (
	"time"

	"github.com/ospect/guestprobe/internal/harness"
)

const (
	elfLoadingProbe   = 5 * time.Second
	memoryAccessProbe = 6 * time.Second
	stackProbe        = 4 * time.Second
	segmentProbe      = 3 * time.Second
)

// Memory returns the suite that stresses the guest's memory setup. A
// guest with broken paging, segmentation or ELF loading dies under these
// debug categories instead of booting.
func Memory() harness.Suite {
	return harness.Suite{
		Name: "memory",
		Cases: []harness.Case{
			ELFLoadingTest(),
			MemoryAccessTest(),
			StackTest(),
			SegmentTest(),
		},
	}
}

// ELFLoadingTest verifies the kernel's ELF image loads without faults.
func ELFLoadingTest() harness.Case {
	return aliveCase(
		"ELF Loading Test",
		"Verify ELF headers are read correctly",
		[]string{"-d", "guest_errors,unimp", "-D", "elf.log"},
		elfLoadingProbe,
	)
}

// MemoryAccessTest verifies memory reads and writes under MMU logging.
func MemoryAccessTest() harness.Case {
	return aliveCase(
		"Memory Access Test",
		"Verify memory reads/writes work correctly",
		[]string{"-d", "mmu,guest_errors", "-D", "memory.log"},
		memoryAccessProbe,
	)
}

// StackTest verifies stack setup and operations.
func StackTest() harness.Case {
	return aliveCase(
		"Stack Test",
		"Verify stack setup and operations",
		[]string{"-d", "cpu,guest_errors", "-D", "stack.log"},
		stackProbe,
	)
}

// SegmentTest verifies the segment registers are configured correctly.
func SegmentTest() harness.Case {
	return aliveCase(
		"Segment Test",
		"Verify segment registers are configured correctly",
		[]string{"-d", "cpu,guest_errors", "-D", "segments.log"},
		segmentProbe,
	)
}
