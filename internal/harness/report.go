// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the result state of a single test case.
type Outcome int

const (
	// NotRun means the case was never executed, for example because the
	// run was aborted.
	NotRun Outcome = iota

	// Passed means the case ran and succeeded.
	Passed

	// Failed means the case ran and failed, or could not be run against
	// its guest.
	Failed
)

// String implements [fmt.Stringer].
func (o Outcome) String() string {
	switch o {
	case NotRun:
		return "not run"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single test case.
type Result struct {
	Suite       string
	Name        string
	Description string
	Outcome     Outcome
	Err         error
	Duration    time.Duration
}

// Report collects the results of a complete run.
type Report struct {
	RunID    uuid.UUID
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Total returns the number of cases in the report.
func (r *Report) Total() int {
	return len(r.Results)
}

// Passed returns the number of cases that passed.
func (r *Report) Passed() int {
	passed := 0

	for _, result := range r.Results {
		if result.Outcome == Passed {
			passed++
		}
	}

	return passed
}

// AllPassed reports whether every case in the report passed.
func (r *Report) AllPassed() bool {
	for _, result := range r.Results {
		if result.Outcome != Passed {
			return false
		}
	}

	return true
}
