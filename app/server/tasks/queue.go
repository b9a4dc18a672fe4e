package tasks

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"socialmedia/app/server/metrics"
	"socialmedia/app/server/notify"

	"go.uber.org/zap"
)

// in-memory per-instance queue for work that shouldn't hold up a response
// (emails, image generation)

var (
	ErrQueueFull   = errors.New("task queue is full")
	ErrQueueClosed = errors.New("task queue is closed")
)

const DefaultTaskTimeout = 2 * time.Minute

type Task func(ctx context.Context) error

type job struct {
	name string
	fn   Task
}

type Queue struct {
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	active atomic.Int64

	ctx         context.Context
	cancel      context.CancelFunc
	taskTimeout time.Duration
}

func NewQueue(workers, size int) *Queue {
	if workers < 1 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		jobs:        make(chan job, size),
		ctx:         ctx,
		cancel:      cancel,
		taskTimeout: DefaultTaskTimeout,
	}

	zap.L().Debug("starting task workers", zap.Int("workers", workers), zap.Int("queueSize", size))

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}

	return q
}

// Enqueue never blocks. Callers get ErrQueueFull when every worker is busy
// and the buffer is at capacity.
func (q *Queue) Enqueue(name string, fn Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.active.Add(1)
	select {
	case q.jobs <- job{name: name, fn: fn}:
		zap.L().Debug("queued task", zap.String("task", name), zap.Int("queued", len(q.jobs)))
		return nil
	default:
		q.active.Add(-1)
		metrics.Tasks.WithLabelValues(name, "rejected").Inc()
		return ErrQueueFull
	}
}

// NumActive counts queued and running tasks.
func (q *Queue) NumActive() int {
	return int(q.active.Load())
}

// Shutdown stops accepting tasks and waits for queued ones to finish. If ctx
// expires first, running tasks are cancelled and ctx's error is returned.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.run(j)
	}
}

func (q *Queue) run(j job) {
	log := zap.L().With(zap.String("task", j.name))
	ctx, cancel := context.WithTimeout(q.ctx, q.taskTimeout)
	start := time.Now()

	defer func() {
		cancel()
		q.active.Add(-1)

		if r := recover(); r != nil {
			log.Error("panic in task", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			notify.Report(notify.Failure{Source: notify.SourceTask, Name: j.name, Err: notify.Recovered(r), Panic: true})
			metrics.Tasks.WithLabelValues(j.name, "panic").Inc()
		}
	}()

	err := j.fn(ctx)
	if err != nil {
		log.Error("task failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		notify.Report(notify.Failure{Source: notify.SourceTask, Name: j.name, Err: err})
		metrics.Tasks.WithLabelValues(j.name, "error").Inc()
		return
	}

	log.Debug("task finished", zap.Duration("elapsed", time.Since(start)))
	metrics.Tasks.WithLabelValues(j.name, "ok").Inc()
}
