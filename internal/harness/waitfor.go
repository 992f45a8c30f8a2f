// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ospect/guestprobe/internal/console"
)

// WaitFor consumes guest output until a line matches one of the given
// regular expression patterns. Matching is case insensitive and the first
// matching line wins; within a line, patterns are tried in the given
// order.
//
// A non-positive timeout selects [Config.Timeout]. On timeout the
// returned [WaitError] wraps [ErrWaitTimeout]. If ctx is cancelled or
// runs out first, its error is returned unchanged instead. If the guest
// exits, lines it printed before exiting are still matched; once the
// output is exhausted the returned [WaitError] wraps [ErrGuestExited].
//
// Consumed lines are gone. Consecutive waits see disjoint output.
func (c *Controller) WaitFor(
	ctx context.Context,
	patterns []string,
	timeout time.Duration,
) (console.Line, error) {
	c.mu.Lock()
	queue := c.queue
	c.mu.Unlock()

	if queue == nil {
		return console.Line{}, ErrNotRunning
	}

	matchers, err := compilePatterns(patterns)
	if err != nil {
		return console.Line{}, err
	}

	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		line, err := queue.Get(waitCtx)
		if err != nil {
			return console.Line{}, c.waitFailure(ctx, err, patterns, queue)
		}

		for _, matcher := range matchers {
			if matcher.MatchString(line.Text) {
				return line, nil
			}
		}
	}
}

// waitFailure translates a queue read failure into the wait error
// taxonomy. Cancellation or an expired deadline of the caller's context
// is passed through unchanged; only the wait's own deadline becomes
// [ErrWaitTimeout].
func (c *Controller) waitFailure(
	ctx context.Context,
	err error,
	patterns []string,
	queue *console.Queue,
) error {
	switch {
	case errors.Is(err, console.ErrClosed):
		err = c.exitReason()
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		err = ErrWaitTimeout
	default:
		return err
	}

	return &WaitError{
		Err:      err,
		Patterns: patterns,
		Tail:     queue.Tail(0),
	}
}

// AliveFor verifies the guest stays running for the given duration. It
// returns nil once the duration has passed with the guest still alive,
// and a [WaitError] wrapping [ErrGuestExited] if the guest exits early.
func (c *Controller) AliveFor(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	queue := c.queue
	exited := c.exited
	c.mu.Unlock()

	if exited == nil {
		return ErrNotRunning
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-exited:
		return &WaitError{
			Err:  c.exitReason(),
			Tail: queue.Tail(0),
		}
	}
}

// compilePatterns compiles the given patterns for case insensitive
// matching.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	matchers := make([]*regexp.Regexp, len(patterns))

	for idx, pattern := range patterns {
		matcher, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matchers[idx] = matcher
	}

	return matchers, nil
}
