// Package executor implements the worker pool and futures combinator API
// described by the task execution engine: Executor owns a fixed number of
// worker goroutines pulling from a shared queue.Queue, checking each
// task's readiness, running it, and recording the outcome. The combinator
// functions (Invoke, Then, WhenAll, WhenFirst, WhenAllBeforeDeadline)
// build composite task.Future values on top of Submit.
package executor

import (
	"fmt"
	"log/slog"
	"sync"

	"go.lepak.sg/taskengine/counter"
	"go.lepak.sg/taskengine/lmap"
	"go.lepak.sg/taskengine/lru"
	"go.lepak.sg/taskengine/queue"
	"go.lepak.sg/taskengine/task"
)

// Executor owns a fixed-size worker pool and the queue.Queue they share.
// Construct one with New; it must eventually be shut down with
// StartShutdown followed by WaitShutdown (or just WaitShutdown, which
// implies the former is unnecessary only if the queue was already closed
// by some other means).
type Executor struct {
	q  *queue.Queue[*task.Task]
	wg sync.WaitGroup

	label  string
	logger *slog.Logger

	trackMu sync.Mutex
	tracked *lmap.LinkedMap[*task.Task, struct{}]

	failMu   sync.Mutex
	failures map[string]int

	memoMu sync.Mutex
	memo   *lru.Cache[string, any]
}

// New constructs an Executor with n worker goroutines, already running,
// and applies opts. n must be at least 1.
func New(n int, opts ...Option) *Executor {
	if n < 1 {
		panic("executor: n must be >= 1")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Executor{
		q:        queue.New[*task.Task](),
		label:    cfg.label,
		logger:   cfg.logger,
		tracked:  lmap.New[*task.Task, struct{}](),
		failures: make(map[string]int),
		memo:     lru.New[string, any](cfg.memoCacheSize),
	}

	e.wg.Add(n)
	for i := 0; i < n; i++ {
		go e.worker()
	}

	return e
}

// Submit enqueues t for execution. If the Executor's queue has already
// been closed by StartShutdown, t is canceled instead and never runs.
// Submitting a Task that has already finished is allowed and benign: a
// worker will observe it finished and drop it without running it.
func (e *Executor) Submit(t *task.Task) {
	if e.q.IsClosed() {
		t.Cancel()
		return
	}
	if t.IsCanceled() {
		return
	}

	e.track(t)
	e.q.Put(t)
}

// StartShutdown closes the queue: no task Submitted from this point on
// will ever run (Submit cancels it instead), but tasks already enqueued
// continue to be processed by workers for as long as they can become
// ready. Callers must stop calling Submit before calling StartShutdown.
func (e *Executor) StartShutdown() {
	e.q.Close()
}

// WaitShutdown blocks until every worker goroutine has exited, which
// happens once the queue is closed and drained. It is safe to call more
// than once.
func (e *Executor) WaitShutdown() {
	e.wg.Wait()
}

// worker is the critical algorithm: pull a task, check readiness, run it
// under an error/panic-capturing boundary, record the outcome, repeat.
// Tasks that are not yet ready are re-enqueued at the tail; this is
// polling, not event-driven wake-up, a deliberate simplicity/throughput
// tradeoff. Tasks that are already finished when taken (canceled, or
// submitted after finishing) are dropped without running.
func (e *Executor) worker() {
	defer e.wg.Done()

	for {
		t, ok := e.q.Take()
		if !ok {
			return
		}

		if t.IsFinished() {
			e.untrack(t)
			continue
		}

		if !t.CanBeExecuted() {
			e.q.Put(t)
			continue
		}

		e.runOne(t)
	}
}

// runOne runs a single ready task under an error- and panic-capturing
// boundary so a misbehaving callable cannot take down a worker goroutine,
// then untracks it, records the outcome on the task and logs it.
func (e *Executor) runOne(t *task.Task) {
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("executor: panic in task %q: %v", t.Label(), p)
			}
		}()
		return t.Run()
	}()

	// untrack and count the outcome before finishing the task, so that a
	// caller woken by Wait or Get already sees it in Pending and
	// FailureHotspots
	e.untrack(t)
	if err != nil {
		e.recordFailure(t.Label())
		t.Fail(err)
		e.logger.Warn("task failed", "executor", e.label, "label", t.Label(), "err", err)
		return
	}

	t.Complete()
	e.logger.Debug("task completed", "executor", e.label, "label", t.Label())
}

func (e *Executor) track(t *task.Task) {
	e.trackMu.Lock()
	defer e.trackMu.Unlock()
	e.tracked.Set(t, struct{}{}, false)
}

func (e *Executor) untrack(t *task.Task) {
	e.trackMu.Lock()
	defer e.trackMu.Unlock()
	e.tracked.Delete(t)
}

func (e *Executor) recordFailure(label string) {
	if label == "" {
		return
	}
	e.failMu.Lock()
	defer e.failMu.Unlock()
	e.failures[label]++
}

// Pending returns the tasks currently tracked by the Executor (submitted
// but not yet observed finished by a worker), in submission order. The
// result is a snapshot: by the time the caller inspects it, some of
// these tasks may already have finished.
func (e *Executor) Pending() []*task.Task {
	e.trackMu.Lock()
	defer e.trackMu.Unlock()

	out := make([]*task.Task, 0, e.tracked.Len())
	it := e.tracked.Iterator()
	for it.Next() {
		t, _ := it.Entry()
		out = append(out, t)
	}
	return out
}

// FailureHotspots returns the k labels whose tasks have failed most
// often, most-frequent first, via counter.TopK. Labels never seen to
// fail are absent. If fewer than k distinct labels have ever failed, the
// result simply has fewer than k entries: k is clamped to the number of
// distinct failing labels before it reaches counter.TopK, which would
// otherwise panic on a k larger than its input population.
func (e *Executor) FailureHotspots(k int) []counter.Entry[string] {
	e.failMu.Lock()
	snapshot := make(map[string]int, len(e.failures))
	for label, n := range e.failures {
		snapshot[label] = n
	}
	e.failMu.Unlock()

	if k > len(snapshot) {
		k = len(snapshot)
	}
	return counter.TopK(snapshot, k)
}

// FailureCount returns the total number of label-tagged task failures
// recorded so far, via counter.Total.
func (e *Executor) FailureCount() int {
	e.failMu.Lock()
	defer e.failMu.Unlock()
	return counter.Total(e.failures)
}
