// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ospect/guestprobe/internal/checks"
	"github.com/ospect/guestprobe/internal/harness"
)

var ErrNoSuiteCases = errors.New("suite has no cases")

// Config holds settings loaded from a YAML config file. Suites are fully
// resolved against the check registry, so unknown case names fail the load,
// not the run.
type Config struct {
	Executable       string
	Timeout          time.Duration
	BootTimeout      time.Duration
	StabilityTimeout time.Duration
	StopGrace        time.Duration
	Suites           []harness.Suite
}

// Duration parses YAML scalars like "45s" or "1m30s" via
// [time.ParseDuration].
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string

	err := node.Decode(&raw)
	if err != nil {
		return err //nolint:wrapcheck
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}

	*d = Duration(parsed)

	return nil
}

type configFile struct {
	Qemu     string `yaml:"qemu"`
	Timeouts struct {
		Default   Duration `yaml:"default"`
		Boot      Duration `yaml:"boot"`
		Stability Duration `yaml:"stability"`
		Grace     Duration `yaml:"grace"`
	} `yaml:"timeouts"`
	Suites []suiteFile `yaml:"suites"`
}

type suiteFile struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
	Cases []string `yaml:"cases"`
}

// LoadConfig reads and resolves the config file at path.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	cfg, err := parseConfig(content)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

func parseConfig(content []byte) (*Config, error) {
	var file configFile

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	err := decoder.Decode(&file)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err //nolint:wrapcheck
	}

	cfg := &Config{
		Executable:       file.Qemu,
		Timeout:          time.Duration(file.Timeouts.Default),
		BootTimeout:      time.Duration(file.Timeouts.Boot),
		StabilityTimeout: time.Duration(file.Timeouts.Stability),
		StopGrace:        time.Duration(file.Timeouts.Grace),
	}

	for _, suite := range file.Suites {
		resolved, err := resolveSuite(suite)
		if err != nil {
			return nil, err
		}

		cfg.Suites = append(cfg.Suites, resolved)
	}

	return cfg, nil
}

func resolveSuite(suite suiteFile) (harness.Suite, error) {
	if suite.Name == "" {
		return harness.Suite{}, errors.New("suite without name")
	}

	if len(suite.Cases) == 0 {
		return harness.Suite{}, fmt.Errorf("%w: %s",
			ErrNoSuiteCases, suite.Name)
	}

	cases := make([]harness.Case, 0, len(suite.Cases))

	for _, name := range suite.Cases {
		testCase, err := checks.Lookup(name)
		if err != nil {
			return harness.Suite{}, fmt.Errorf("suite %s: %w",
				suite.Name, err)
		}

		cases = append(cases, testCase)
	}

	return harness.Suite{
		Name:  suite.Name,
		Flags: suite.Flags,
		Cases: cases,
	}, nil
}

// apply overlays the file settings onto cfg. Zero values leave the target
// untouched so command line flags and built-in defaults keep working.
func (c *Config) apply(cfg *harness.Config) {
	if c.Executable != "" {
		cfg.Executable = c.Executable
	}

	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}

	if c.BootTimeout > 0 {
		cfg.BootTimeout = c.BootTimeout
	}

	if c.StabilityTimeout > 0 {
		cfg.StabilityTimeout = c.StabilityTimeout
	}

	if c.StopGrace > 0 {
		cfg.StopGrace = c.StopGrace
	}
}

// suite returns the config-defined suite with the given name.
func (c *Config) suite(name string) (harness.Suite, bool) {
	if c == nil {
		return harness.Suite{}, false
	}

	for _, suite := range c.Suites {
		if suite.Name == name {
			return suite, true
		}
	}

	return harness.Suite{}, false
}
