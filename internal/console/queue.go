// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"sync"
)

const (
	// DefaultCapacity is the number of lines the queue buffers before it
	// starts discarding the oldest one.
	DefaultCapacity = 1024

	// DefaultTailSize is the number of most recent lines kept for
	// diagnostics.
	DefaultTailSize = 10
)

// Queue is a bounded multi-producer queue of tagged output lines.
//
// Producers never block. When the queue is full the oldest buffered line
// is discarded to make room, so a guest that floods its console cannot
// stall the readers. Independent of the buffer, the queue remembers the
// most recent lines for failure diagnostics.
type Queue struct {
	lines     chan Line
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	next     uint64
	tail     []Line
	tailSize int
	dropped  uint64
}

// NewQueue creates a queue buffering up to capacity lines and remembering
// the tailSize most recent ones. Non-positive values select the defaults.
func NewQueue(capacity, tailSize int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if tailSize <= 0 {
		tailSize = DefaultTailSize
	}

	return &Queue{
		lines:    make(chan Line, capacity),
		done:     make(chan struct{}),
		tail:     make([]Line, 0, tailSize),
		tailSize: tailSize,
	}
}

// Put appends a line read from channel. It never blocks. If the queue is
// full the oldest buffered line is discarded. After [Queue.Close] the line
// is dropped silently.
func (q *Queue) Put(channel Channel, text string) {
	select {
	case <-q.done:
		return
	default:
	}

	q.mu.Lock()
	line := Line{Channel: channel, Text: text, Seq: q.next}
	q.next++
	q.remember(line)
	q.mu.Unlock()

	for {
		select {
		case q.lines <- line:
			return
		case <-q.done:
			return
		default:
		}

		select {
		case <-q.lines:
			q.mu.Lock()
			q.dropped++
			q.mu.Unlock()
		default:
		}
	}
}

// remember records line in the diagnostic tail. Callers must hold q.mu.
func (q *Queue) remember(line Line) {
	if len(q.tail) < q.tailSize {
		q.tail = append(q.tail, line)
		return
	}

	copy(q.tail, q.tail[1:])
	q.tail[len(q.tail)-1] = line
}

// Get returns the next line in arrival order. It blocks until a line is
// available, ctx is done, or the queue has been closed and drained. Lines
// buffered before [Queue.Close] are still delivered.
func (q *Queue) Get(ctx context.Context) (Line, error) {
	select {
	case line := <-q.lines:
		return line, nil
	default:
	}

	select {
	case line := <-q.lines:
		return line, nil
	case <-ctx.Done():
		return Line{}, ctx.Err()
	case <-q.done:
		select {
		case line := <-q.lines:
			return line, nil
		default:
			return Line{}, ErrClosed
		}
	}
}

// Close marks the queue as closed. It is safe to call multiple times and
// safe to call concurrently with [Queue.Put] and [Queue.Get].
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}

// Tail returns up to n of the most recent lines, oldest first. A
// non-positive n returns the whole remembered tail.
func (q *Queue) Tail(n int) []Line {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n <= 0 || n > len(q.tail) {
		n = len(q.tail)
	}

	out := make([]Line, n)
	copy(out, q.tail[len(q.tail)-n:])

	return out
}

// Dropped returns the number of lines discarded due to overflow.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dropped
}
