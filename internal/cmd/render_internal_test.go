// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/ospect/guestprobe/internal/harness"
)

func plainPrinter(t *testing.T) (*printer, *bytes.Buffer) {
	t.Helper()

	restore := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = restore })

	var buf bytes.Buffer

	return newPrinter(&buf), &buf
}

func TestPrinterResult(t *testing.T) {
	tests := []struct {
		name     string
		result   harness.Result
		expected []string
	}{
		{
			name: "passed",
			result: harness.Result{
				Name:        "Boot Test",
				Description: "Verify that the OS boots",
				Outcome:     harness.Passed,
			},
			expected: []string{
				"[PASS] Boot Test: Verify that the OS boots\n",
			},
		},
		{
			name: "failed",
			result: harness.Result{
				Name:        "Memory Test",
				Description: "Verify memory operations",
				Outcome:     harness.Failed,
				Err:         errors.New("memory error detected: fault"),
			},
			expected: []string{
				"[FAIL] Memory Test: Verify memory operations\n",
				"      Error: memory error detected: fault\n",
			},
		},
		{
			name: "failed multiline",
			result: harness.Result{
				Name:    "Memory Test",
				Outcome: harness.Failed,
				Err:     errors.New("guest exited\nlast output:\n  [stdout] bye"),
			},
			expected: []string{
				"      Error: guest exited\n",
				"      last output:\n",
				"        [stdout] bye\n",
			},
		},
		{
			name: "not run",
			result: harness.Result{
				Name:        "Stack Test",
				Description: "Verify stack setup",
				Outcome:     harness.NotRun,
			},
			expected: []string{
				"[SKIP] Stack Test: Verify stack setup\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printer, buf := plainPrinter(t)

			printer.Result(tt.result)

			for _, line := range tt.expected {
				assert.Contains(t, buf.String(), line)
			}
		})
	}
}

func TestPrinterSummaryAllPassed(t *testing.T) {
	printer, buf := plainPrinter(t)

	report := &harness.Report{
		Duration: 3 * time.Second,
		Results: []harness.Result{
			{
				Suite:    "basic",
				Name:     "Boot Test",
				Outcome:  harness.Passed,
				Duration: 3 * time.Second,
			},
		},
	}

	printer.Summary(report)

	output := buf.String()
	assert.Contains(t, output, "Test Summary: 1/1 tests passed")
	assert.Contains(t, output, "All tests passed!")
	assert.Contains(t, output, "Boot Test")
	assert.NotContains(t, output, "Some tests failed")
}

func TestPrinterSummaryWithFailures(t *testing.T) {
	printer, buf := plainPrinter(t)

	report := &harness.Report{
		Results: []harness.Result{
			{
				Suite:   "basic",
				Name:    "Boot Test",
				Outcome: harness.Passed,
			},
			{
				Suite:   "basic",
				Name:    "Memory Test",
				Outcome: harness.Failed,
				Err:     errors.New("memory error detected\nlast output:"),
			},
		},
	}

	printer.Summary(report)

	output := buf.String()
	assert.Contains(t, output, "Test Summary: 1/2 tests passed")
	assert.Contains(t, output, "Some tests failed:")
	assert.Contains(t, output, "  - Memory Test: memory error detected\n")
	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "FAIL")
	assert.NotContains(t, output, "All tests passed")
}

func TestFirstLine(t *testing.T) {
	assert.Empty(t, firstLine(nil))
	assert.Equal(t, "boom", firstLine(errors.New("boom")))
	assert.Equal(t, "boom", firstLine(errors.New("boom\ndetails")))
}
