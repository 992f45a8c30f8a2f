// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"bufio"
	"fmt"
	"io"
)

// Drain reads r line by line until EOF and puts each line into q tagged
// with channel. The scan buffer is enlarged since QEMU debug output can
// produce lines far beyond bufio's default limit.
func Drain(r io.Reader, channel Channel, q *Queue) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		q.Put(channel, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", channel, err)
	}

	return nil
}
