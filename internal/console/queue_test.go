// SPDX-FileCopyrightText: 2026 The guestprobe authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package console_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospect/guestprobe/internal/console"
)

func TestQueueArrivalOrder(t *testing.T) {
	q := console.NewQueue(0, 0)

	q.Put(console.Stdout, "boot")
	q.Put(console.Stderr, "qemu: warning")
	q.Put(console.Stdout, "ready")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var got []console.Line

	for i := 0; i < 3; i++ {
		line, err := q.Get(ctx)
		require.NoError(t, err)

		got = append(got, line)
	}

	require.Len(t, got, 3)

	assert.Equal(t, console.Stdout, got[0].Channel)
	assert.Equal(t, "boot", got[0].Text)
	assert.Equal(t, console.Stderr, got[1].Channel)
	assert.Equal(t, "qemu: warning", got[1].Text)
	assert.Equal(t, console.Stdout, got[2].Channel)
	assert.Equal(t, "ready", got[2].Text)

	for idx, line := range got {
		assert.Equal(t, uint64(idx), line.Seq)
	}
}

func TestQueueGetContextDone(t *testing.T) {
	q := console.NewQueue(0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Get(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueueCloseDrainsBufferedLines(t *testing.T) {
	q := console.NewQueue(0, 0)

	q.Put(console.Stdout, "one")
	q.Put(console.Stdout, "two")
	q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	line, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", line.Text)

	line, err = q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", line.Text)

	_, err = q.Get(ctx)
	require.ErrorIs(t, err, console.ErrClosed)
}

func TestQueuePutAfterClose(t *testing.T) {
	q := console.NewQueue(0, 0)

	q.Close()
	q.Close()
	q.Put(console.Stdout, "late")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := q.Get(ctx)
	require.ErrorIs(t, err, console.ErrClosed)
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := console.NewQueue(4, 0)

	for idx := 0; idx < 10; idx++ {
		q.Put(console.Stdout, fmt.Sprintf("line %d", idx))
	}

	assert.Equal(t, uint64(6), q.Dropped())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, expected := range []string{"line 6", "line 7", "line 8", "line 9"} {
		line, err := q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, line.Text)
	}
}

func TestQueueTail(t *testing.T) {
	q := console.NewQueue(64, 10)

	for idx := 0; idx < 15; idx++ {
		q.Put(console.Stdout, fmt.Sprintf("line %d", idx))
	}

	tail := q.Tail(0)
	require.Len(t, tail, 10)
	assert.Equal(t, "line 5", tail[0].Text)
	assert.Equal(t, "line 14", tail[9].Text)

	tail = q.Tail(3)
	require.Len(t, tail, 3)
	assert.Equal(t, "line 12", tail[0].Text)
	assert.Equal(t, "line 14", tail[2].Text)

	tail = q.Tail(100)
	assert.Len(t, tail, 10)
}

func TestQueueTailSurvivesOverflow(t *testing.T) {
	q := console.NewQueue(2, 5)

	for idx := 0; idx < 20; idx++ {
		q.Put(console.Stdout, fmt.Sprintf("line %d", idx))
	}

	tail := q.Tail(0)
	require.Len(t, tail, 5)
	assert.Equal(t, "line 15", tail[0].Text)
	assert.Equal(t, "line 19", tail[4].Text)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := console.NewQueue(1024, 0)

	var wg sync.WaitGroup

	produce := func(channel console.Channel) {
		defer wg.Done()

		for idx := 0; idx < 100; idx++ {
			q.Put(channel, fmt.Sprintf("%s %d", channel, idx))
		}
	}

	wg.Add(2)

	go produce(console.Stdout)
	go produce(console.Stderr)

	wg.Wait()
	q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	perChannel := make(map[console.Channel][]string)

	for {
		line, err := q.Get(ctx)
		if err != nil {
			require.ErrorIs(t, err, console.ErrClosed)

			break
		}

		perChannel[line.Channel] = append(perChannel[line.Channel], line.Text)
	}

	for _, channel := range []console.Channel{console.Stdout, console.Stderr} {
		lines := perChannel[channel]
		require.Len(t, lines, 100)

		for idx, text := range lines {
			assert.Equal(t, fmt.Sprintf("%s %d", channel, idx), text)
		}
	}
}
