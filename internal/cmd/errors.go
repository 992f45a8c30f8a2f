// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksFailed indicates that at least one check of a run did not
	// pass. The run summary carries the details.
	ErrChecksFailed = errors.New("some checks failed")

	// ErrPreflightFailed indicates that a doctor preflight check failed.
	ErrPreflightFailed = errors.New("preflight failed")

	// ErrNoBootTarget is returned when neither an OS image argument nor a
	// kernel is given.
	ErrNoBootTarget = errors.New("no OS image or kernel given")

	ErrEmptyFilePath  = errors.New("file path must not be empty")
	ErrNotRegularFile = errors.New("not a regular file")
	ErrReadBuildInfo  = errors.New("build info not available")
)

// ConfigError wraps errors that occur while loading the config file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Is(other error) bool {
	_, ok := other.(*ConfigError)
	return ok
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
