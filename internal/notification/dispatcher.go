package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type job struct {
	name string
	run  func(ctx context.Context) error
}

// Dispatcher runs notification tasks on a bounded worker pool, off the request path.
// A full queue drops the task; callers never block.
type Dispatcher struct {
	jobs    chan job
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(workers, queueSize int, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}

	d := &Dispatcher{
		jobs:    make(chan job, queueSize),
		timeout: timeout,
		log:     log,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit enqueues task, dropping it with a warning when the queue is full or closed.
func (d *Dispatcher) Submit(name string, task func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("notification dropped: dispatcher closed", zap.String("task", name))
		return
	}

	select {
	case d.jobs <- job{name: name, run: task}:
	default:
		d.log.Warn("notification dropped: queue full", zap.String("task", name))
	}
}

// Close stops accepting tasks and waits for queued ones to finish or ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.execute(j)
	}
}

func (d *Dispatcher) execute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	if err := runSafely(ctx, j.run); err != nil {
		d.log.Error("notification task failed",
			zap.String("task", j.name),
			zap.Duration("took", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	d.log.Debug("notification task done", zap.String("task", j.name), zap.Duration("took", time.Since(start)))
}

func runSafely(ctx context.Context, run func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return run(ctx)
}

// Inline runs tasks synchronously in the caller. Failures are logged, never returned.
type Inline struct {
	Log *zap.Logger
}

func (i Inline) Submit(name string, task func(ctx context.Context) error) {
	if err := runSafely(context.Background(), task); err != nil && i.Log != nil {
		i.Log.Error("notification task failed", zap.String("task", name), zap.Error(err))
	}
}
