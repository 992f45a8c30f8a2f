// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import "errors"

// ErrClosed is returned by [Queue.Get] once the queue has been closed and
// all buffered lines have been consumed.
var ErrClosed = errors.New("queue closed")
