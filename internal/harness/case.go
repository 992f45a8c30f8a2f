// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import "context"

// Case is a single test with its own guest. Run receives a fresh, not yet
// started controller and boots the guest itself, so each case can pass
// its own QEMU flags. Run returns nil if the case passed. The caller
// stops the guest afterwards, on every exit path.
type Case interface {
	Name() string
	Description() string
	Run(ctx context.Context, ctl *Controller) error
}

// NewCase wraps a plain function as a [Case].
func NewCase(
	name string,
	description string,
	run func(ctx context.Context, ctl *Controller) error,
) Case {
	return &funcCase{
		name:        name,
		description: description,
		run:         run,
	}
}

type funcCase struct {
	name        string
	description string
	run         func(ctx context.Context, ctl *Controller) error
}

func (c *funcCase) Name() string {
	return c.name
}

func (c *funcCase) Description() string {
	return c.description
}

func (c *funcCase) Run(ctx context.Context, ctl *Controller) error {
	return c.run(ctx, ctl)
}
