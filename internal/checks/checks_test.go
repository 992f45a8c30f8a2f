// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package checks_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospect/guestprobe/internal/checks"
	"github.com/ospect/guestprobe/internal/harness"
)

// newGuest prepares a controller backed by a fake emulator script.
func newGuest(t *testing.T, script string, opts ...func(*harness.Config)) *harness.Controller {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()

	executable := filepath.Join(dir, "qemu-stub")
	err := os.WriteFile(executable, []byte("#!/bin/sh\n"+script+"\n"), 0o755)
	require.NoError(t, err)

	image := filepath.Join(dir, "disk.img")
	err = os.WriteFile(image, []byte("not a real image"), 0o644)
	require.NoError(t, err)

	cfg := harness.Config{
		Executable: executable,
		Timeout:    2 * time.Second,
		StopGrace:  300 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	ctl := harness.New(cfg, image)

	t.Cleanup(func() {
		require.NoError(t, ctl.Stop())
	})

	return ctl
}

func TestMemoryTestDetectsFault(t *testing.T) {
	ctl := newGuest(t, `echo "Segmentation Fault at 0x00100000" >&2
exec sleep 30`)

	err := checks.MemoryTest().Run(context.Background(), ctl)
	require.ErrorContains(t, err, "memory error detected")
	require.ErrorContains(t, err, "Segmentation Fault")
}

func TestMemoryTestFailsOnGuestExit(t *testing.T) {
	ctl := newGuest(t, `exit 1`)

	err := checks.MemoryTest().Run(context.Background(), ctl)
	require.ErrorIs(t, err, harness.ErrGuestExited)
}

func TestDiskIOTestSeesActivity(t *testing.T) {
	ctl := newGuest(t, `echo "fdc: read sector 1" >&2
exec sleep 30`)

	err := checks.DiskIOTest().Run(context.Background(), ctl)
	require.NoError(t, err)
}

func TestDiskIOTestFailsWithoutGuest(t *testing.T) {
	ctl := newGuest(t, `exit 0`)

	err := checks.DiskIOTest().Run(context.Background(), ctl)
	require.ErrorIs(t, err, harness.ErrGuestExited)
}

func TestBootTestFailsWhenGuestDies(t *testing.T) {
	ctl := newGuest(t, `echo "crashing"
exit 1`)

	started := time.Now()

	err := checks.BootTest().Run(context.Background(), ctl)

	require.ErrorIs(t, err, harness.ErrGuestExited)
	assert.Less(t, time.Since(started), 2*time.Second, "guest death must end the probe early")
}

func TestFullBootCycleProbeBoundedByBootTimeout(t *testing.T) {
	ctl := newGuest(t, `exec sleep 30`, func(cfg *harness.Config) {
		cfg.BootTimeout = 300 * time.Millisecond
	})

	started := time.Now()

	err := checks.FullBootCycle().Run(context.Background(), ctl)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestStabilityTestProbeBoundedByStabilityTimeout(t *testing.T) {
	ctl := newGuest(t, `exec sleep 30`, func(cfg *harness.Config) {
		cfg.StabilityTimeout = 300 * time.Millisecond
	})

	started := time.Now()

	err := checks.StabilityTest().Run(context.Background(), ctl)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 2*time.Second)
}
