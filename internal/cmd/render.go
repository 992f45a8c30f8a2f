// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ospect/guestprobe/internal/harness"
)

const separator = "=================================================="

// printer renders check results as they arrive plus the closing summary.
type printer struct {
	out  io.Writer
	pass *color.Color
	fail *color.Color
	skip *color.Color
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:  out,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		skip: color.New(color.FgYellow),
	}
}

func (p *printer) RunHeader(image, kernel string) {
	fmt.Fprintln(p.out, "Running MTOS Test Suite")

	if image != "" {
		fmt.Fprintf(p.out, "OS Image: %s\n", image)
	} else {
		fmt.Fprintf(p.out, "Kernel: %s\n", kernel)
	}

	fmt.Fprintln(p.out, separator)
}

// Result prints the outcome line for a single finished check. It is used
// as the runner's observe callback.
func (p *printer) Result(result harness.Result) {
	switch result.Outcome {
	case harness.Passed:
		p.pass.Fprintf(p.out, "[PASS] %s: %s\n",
			result.Name, result.Description)
	case harness.Failed:
		p.fail.Fprintf(p.out, "[FAIL] %s: %s\n",
			result.Name, result.Description)
		p.failureDetail(result.Err)
	default:
		p.skip.Fprintf(p.out, "[SKIP] %s: %s\n",
			result.Name, result.Description)
	}
}

func (p *printer) failureDetail(err error) {
	if err == nil {
		return
	}

	for idx, line := range strings.Split(err.Error(), "\n") {
		if idx == 0 {
			fmt.Fprintf(p.out, "      Error: %s\n", line)
		} else {
			fmt.Fprintf(p.out, "      %s\n", line)
		}
	}
}

func (p *printer) Summary(report *harness.Report) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, separator)

	writer := table.NewWriter()
	writer.SetOutputMirror(p.out)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"Suite", "Check", "Result", "Time"})

	for _, result := range report.Results {
		writer.AppendRow(table.Row{
			result.Suite,
			result.Name,
			p.outcomeCell(result.Outcome),
			result.Duration.Round(time.Millisecond),
		})
	}

	writer.AppendFooter(table.Row{
		"", "",
		fmt.Sprintf("%d/%d", report.Passed(), report.Total()),
		report.Duration.Round(time.Millisecond),
	})
	writer.Render()

	fmt.Fprintf(p.out, "Test Summary: %d/%d tests passed\n",
		report.Passed(), report.Total())

	if report.AllPassed() {
		p.pass.Fprintln(p.out, "All tests passed!")
		return
	}

	p.fail.Fprintln(p.out, "Some tests failed:")

	for _, result := range report.Results {
		if result.Outcome == harness.Passed {
			continue
		}

		fmt.Fprintf(p.out, "  - %s: %s\n",
			result.Name, firstLine(result.Err))
	}
}

func (p *printer) outcomeCell(outcome harness.Outcome) string {
	switch outcome {
	case harness.Passed:
		return p.pass.Sprint("PASS")
	case harness.Failed:
		return p.fail.Sprint("FAIL")
	default:
		return p.skip.Sprint("SKIP")
	}
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}

	line, _, _ := strings.Cut(err.Error(), "\n")

	return line
}
