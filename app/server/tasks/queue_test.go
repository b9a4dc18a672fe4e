package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"socialmedia/app/server/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsTasks(t *testing.T) {
	q := NewQueue(2, 10)

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue("count", func(ctx context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, q.Shutdown(context.Background()))
	assert.Equal(t, int32(5), count.Load())
	assert.Equal(t, 0, q.NumActive())

	err := q.Enqueue("late", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueFull(t *testing.T) {
	q := NewQueue(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, q.Enqueue("block", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, q.Enqueue("buffered", func(ctx context.Context) error { return nil }))
	assert.Equal(t, 2, q.NumActive())

	err := q.Enqueue("overflow", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.NumActive())

	close(release)
	require.NoError(t, q.Shutdown(context.Background()))
	assert.Equal(t, 0, q.NumActive())
}

func TestQueueRecoversPanics(t *testing.T) {
	var mu sync.Mutex
	var notified []notify.Failure
	notify.RegisterReporter(func(f notify.Failure) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, f)
	})
	defer notify.RegisterReporter(nil)

	q := NewQueue(1, 3)
	require.NoError(t, q.Enqueue("panics", func(ctx context.Context) error { panic("boom") }))
	require.NoError(t, q.Enqueue("fails", func(ctx context.Context) error { return errors.New("nope") }))

	var ran atomic.Bool
	require.NoError(t, q.Enqueue("after", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))

	require.NoError(t, q.Shutdown(context.Background()))
	assert.True(t, ran.Load())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, notified, 2)
	assert.True(t, notified[0].Panic)
	assert.Equal(t, "panic in task panics: boom", notified[0].Error())
	assert.Equal(t, "task fails failed: nope", notified[1].Error())
}

func TestQueueShutdownDeadline(t *testing.T) {
	q := NewQueue(1, 1)
	cancelled := make(chan struct{})

	require.NoError(t, q.Enqueue("slow", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := q.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running task was not cancelled")
	}
}
