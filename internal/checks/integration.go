// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/ospect/guestprobe/internal/harness"
)

const (
	fullBootProbe    = 10 * time.Second
	performanceProbe = 5 * time.Second
	stabilityProbe   = 15 * time.Second

	// maxBootTime is the acceptable upper bound for a complete boot.
	maxBootTime = 30 * time.Second
)

// Integration returns the suite with the long running end-to-end checks.
func Integration() harness.Suite {
	return harness.Suite{
		Name: "integration",
		Cases: []harness.Case{
			FullBootCycle(),
			PerformanceTest(),
			StabilityTest(),
		},
	}
}

// FullBootCycle boots with comprehensive logging and verifies the guest
// survives a complete boot sequence. The probe window is bounded by the
// configured boot timeout.
func FullBootCycle() harness.Case {
	return harness.NewCase(
		"Full Boot Cycle",
		"Complete boot sequence test",
		func(ctx context.Context, ctl *harness.Controller) error {
			err := ctl.Start(ctx,
				"-d", "cpu_reset,cpu,guest_errors,unimp,trace:*",
				"-D", "full_boot.log",
			)
			if err != nil {
				return err
			}

			return ctl.AliveFor(ctx, boundedProbe(fullBootProbe, ctl.Config().BootTimeout))
		})
}

// PerformanceTest verifies the guest boots within an acceptable time.
func PerformanceTest() harness.Case {
	return harness.NewCase(
		"Performance Test",
		"Measure boot time and performance",
		func(ctx context.Context, ctl *harness.Controller) error {
			started := time.Now()

			if err := ctl.Start(ctx, "-d", "guest_errors"); err != nil {
				return err
			}

			if err := ctl.AliveFor(ctx, performanceProbe); err != nil {
				return err
			}

			if bootTime := time.Since(started); bootTime >= maxBootTime {
				return fmt.Errorf("boot time too slow: %.2fs", bootTime.Seconds())
			}

			return nil
		})
}

// StabilityTest verifies the guest keeps running over a longer window.
// The window is bounded by the configured stability timeout.
func StabilityTest() harness.Case {
	return harness.NewCase(
		"Stability Test",
		"Test system stability and reliability",
		func(ctx context.Context, ctl *harness.Controller) error {
			if err := ctl.Start(ctx, "-d", "guest_errors"); err != nil {
				return err
			}

			return ctl.AliveFor(ctx, boundedProbe(stabilityProbe, ctl.Config().StabilityTimeout))
		})
}

// boundedProbe caps a probe window at the configured limit.
func boundedProbe(probe, limit time.Duration) time.Duration {
	if limit > 0 && limit < probe {
		return limit
	}

	return probe
}
