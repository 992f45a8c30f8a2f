// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Suite is a named, ordered set of cases that are run against the same
// image. Flags are shared default QEMU flags for all guests booted by the
// suite's cases; cases add their own flags when they start the guest.
// Suites are plain data and can be assembled from code or from
// configuration.
type Suite struct {
	Name  string
	Flags []string
	Cases []Case
}

// Runner executes suites. Every case gets its own freshly booted guest.
type Runner struct {
	// Config is used for every controller the runner creates.
	Config Config

	// Image is the OS image the guests boot from.
	Image string

	// Observe, if set, is called with each result as soon as the case has
	// finished.
	Observe func(Result)
}

// Run executes all cases of all given suites in order. A failing or
// panicking case never stops the run; its failure is recorded and the run
// continues with the next case. Cases remaining after ctx is cancelled
// are recorded as not run.
func (r *Runner) Run(ctx context.Context, suites []Suite) *Report {
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}

	slog.Debug("run started", slog.String("run_id", report.RunID.String()))

	for _, suite := range suites {
		for _, testCase := range suite.Cases {
			var result Result

			if ctx.Err() != nil {
				result = Result{
					Suite:       suite.Name,
					Name:        testCase.Name(),
					Description: testCase.Description(),
					Outcome:     NotRun,
					Err:         ctx.Err(),
				}
			} else {
				result = r.runCase(ctx, suite, testCase)
			}

			report.Results = append(report.Results, result)

			if r.Observe != nil {
				r.Observe(result)
			}
		}
	}

	report.Duration = time.Since(report.Started)

	slog.Debug("run finished",
		slog.String("run_id", report.RunID.String()),
		slog.Int("passed", report.Passed()),
		slog.Int("total", report.Total()),
	)

	return report
}

// runCase executes a single case against its own controller. The case is
// handed a fresh, not yet started controller and boots the guest itself,
// with the suite's shared flags as base flags. The guest is stopped when
// the case is done, no matter how it ended.
func (r *Runner) runCase(
	ctx context.Context,
	suite Suite,
	testCase Case,
) (result Result) {
	result = Result{
		Suite:       suite.Name,
		Name:        testCase.Name(),
		Description: testCase.Description(),
	}

	started := time.Now()
	defer func() {
		result.Duration = time.Since(started)
	}()

	cfg := r.Config
	cfg.BaseFlags = append(slices.Clone(cfg.BaseFlags), suite.Flags...)

	ctl := New(cfg, r.Image)

	defer func() {
		if err := ctl.Stop(); err != nil {
			slog.Warn("stopping guest failed",
				slog.String("test", testCase.Name()),
				slog.Any("error", err),
			)
		}
	}()

	defer func() {
		if value := recover(); value != nil {
			stack := debug.Stack()
			slog.Error("test case panicked",
				slog.String("test", testCase.Name()),
				slog.String("stack", string(stack)),
			)

			result.Outcome = Failed
			result.Err = &PanicError{Value: value, Stack: stack}
		}
	}()

	if err := testCase.Run(ctx, ctl); err != nil {
		result.Outcome = Failed
		result.Err = err

		return result
	}

	result.Outcome = Passed

	return result
}
