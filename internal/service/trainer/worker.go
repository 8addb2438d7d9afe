package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ReviewWorker runs background review tasks with bounded concurrency.
// Tasks run on a context detached from the request that scheduled them.
type ReviewWorker struct {
	log     *slog.Logger
	sem     *semaphore.Weighted
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewReviewWorker creates a worker running at most maxConcurrent tasks,
// each bounded by timeout.
func NewReviewWorker(log *slog.Logger, maxConcurrent int, timeout time.Duration) *ReviewWorker {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ReviewWorker{
		log:     log.With("component", "review_worker"),
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Submit starts fn in the background. It returns false without running fn
// when the worker is closed or all slots are busy.
func (w *ReviewWorker) Submit(name string, fn func(ctx context.Context) error) bool {
	w.mu.Lock()
	if w.closed || !w.sem.TryAcquire(1) {
		w.mu.Unlock()
		return false
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		defer w.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				w.log.Error("background task panicked",
					slog.String("task", name),
					slog.String("panic", fmt.Sprint(r)),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		ctx := w.ctx
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}

		start := time.Now()
		if err := fn(ctx); err != nil {
			w.log.Error("background task failed",
				slog.String("task", name),
				slog.String("error", err.Error()),
				slog.Duration("duration", time.Since(start)),
			)
			return
		}
		w.log.Debug("background task done",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
		)
	}()
	return true
}

// Wait blocks until all submitted tasks have returned.
func (w *ReviewWorker) Wait() { w.wg.Wait() }

// Close stops accepting tasks and waits for running ones until ctx is
// done, at which point their contexts are cancelled.
func (w *ReviewWorker) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.cancel()
		return nil
	case <-ctx.Done():
		w.cancel()
		<-done
		return fmt.Errorf("review worker close: %w", ctx.Err())
	}
}
