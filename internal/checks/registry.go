// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks

import (
	"errors"
	"fmt"

	"github.com/ospect/guestprobe/internal/harness"
)

// All is the suite name that selects every built-in suite.
const All = "all"

var (
	// ErrUnknownSuite is returned for suite names no built-in suite has.
	ErrUnknownSuite = errors.New("unknown suite")

	// ErrUnknownCase is returned for case names no built-in case has.
	ErrUnknownCase = errors.New("unknown test case")
)

// Suites returns all built-in suites in their canonical run order.
func Suites() []harness.Suite {
	return []harness.Suite{
		Basic(),
		Boot(),
		Memory(),
		Integration(),
	}
}

// ByName returns the built-in suites selected by name. The name [All]
// selects every suite.
func ByName(name string) ([]harness.Suite, error) {
	if name == All {
		return Suites(), nil
	}

	for _, suite := range Suites() {
		if suite.Name == name {
			return []harness.Suite{suite}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, name)
}

// Lookup returns the built-in case with the given name, searching all
// suites.
func Lookup(name string) (harness.Case, error) {
	for _, suite := range Suites() {
		for _, testCase := range suite.Cases {
			if testCase.Name() == name {
				return testCase, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCase, name)
}
