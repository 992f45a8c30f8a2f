// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospect/guestprobe/internal/checks"
	"github.com/ospect/guestprobe/internal/cmd"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "guestprobe.yaml")

	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
qemu: qemu-system-x86_64
timeouts:
  default: 20s
  boot: 1m
  stability: 90s
  grace: 2s
suites:
  - name: smoke
    flags: ["-d", "guest_errors"]
    cases: ["Boot Test", "Memory Test"]
  - name: storage
    cases: ["Disk I/O Test"]
`)

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "qemu-system-x86_64", cfg.Executable)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.BootTimeout)
	assert.Equal(t, 90*time.Second, cfg.StabilityTimeout)
	assert.Equal(t, 2*time.Second, cfg.StopGrace)

	require.Len(t, cfg.Suites, 2)

	smoke := cfg.Suites[0]
	assert.Equal(t, "smoke", smoke.Name)
	assert.Equal(t, []string{"-d", "guest_errors"}, smoke.Flags)
	require.Len(t, smoke.Cases, 2)
	assert.Equal(t, "Boot Test", smoke.Cases[0].Name())
	assert.Equal(t, "Memory Test", smoke.Cases[1].Name())

	storage := cfg.Suites[1]
	assert.Equal(t, "storage", storage.Name)
	assert.Empty(t, storage.Flags)
	require.Len(t, storage.Cases, 1)
	assert.Equal(t, "Disk I/O Test", storage.Cases[0].Name())
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Executable)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.Suites)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorIs(t, err, &cmd.ConfigError{})
}

func TestLoadConfigUnknownCase(t *testing.T) {
	path := writeConfig(t, `
suites:
  - name: smoke
    cases: ["Warp Drive Test"]
`)

	_, err := cmd.LoadConfig(path)
	require.ErrorIs(t, err, checks.ErrUnknownCase)
	require.ErrorContains(t, err, "Warp Drive Test")
	require.ErrorContains(t, err, "smoke")
}

func TestLoadConfigSuiteWithoutCases(t *testing.T) {
	path := writeConfig(t, `
suites:
  - name: empty
`)

	_, err := cmd.LoadConfig(path)
	require.ErrorIs(t, err, cmd.ErrNoSuiteCases)
	require.ErrorContains(t, err, "empty")
}

func TestLoadConfigSuiteWithoutName(t *testing.T) {
	path := writeConfig(t, `
suites:
  - cases: ["Boot Test"]
`)

	_, err := cmd.LoadConfig(path)
	require.ErrorContains(t, err, "suite without name")
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `
timeouts:
  default: soon
`)

	_, err := cmd.LoadConfig(path)
	require.ErrorContains(t, err, "duration")
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := writeConfig(t, `
emulator: qemu-system-i386
`)

	_, err := cmd.LoadConfig(path)
	require.ErrorIs(t, err, &cmd.ConfigError{})
	require.ErrorContains(t, err, "emulator")
}
