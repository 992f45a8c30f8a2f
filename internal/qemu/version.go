// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 10 * time.Second

// Version probes the given QEMU executable and returns the first line of its
// --version output.
//
// The probe is bounded, so a wedged binary cannot stall the caller.
func Version(ctx context.Context, executable string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, executable, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("version probe: %w", err)
	}

	line, _, _ := strings.Cut(string(out), "\n")

	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrNoVersionOutput
	}

	return line, nil
}
