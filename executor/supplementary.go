package executor

import (
	"context"
	"fmt"
	"sync"

	"go.lepak.sg/taskengine/task"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// InvokeMemoized behaves like Invoke, except repeated calls with the
// same key, made before the cached entry is evicted, return the same
// *task.Future[T] instead of resubmitting fn. The cache is bounded by
// the Executor's WithMemoCacheSize (default lru.DefaultCacheMax);
// eviction is least-recently-used.
//
// Memoization is keyed on an explicit string, not on fn's identity:
// callers are responsible for choosing a key that actually identifies
// the computation.
func InvokeMemoized[T any](e *Executor, key string, fn func() (T, error)) *task.Future[T] {
	e.memoMu.Lock()
	if cached, ok := e.memo.Get(key); ok {
		e.memoMu.Unlock()
		return cached.(*task.Future[T])
	}
	f := task.NewFuture(key, fn)
	e.memo.Add(key, f)
	e.memoMu.Unlock()

	e.Submit(f.Task)
	return f
}

// InvokeAllBounded submits one Future per element of fns, bounding how
// many Submit calls are outstanding at once to maxInFlight via a
// semaphore.Weighted, mirroring the semaphore-bounded-fan-out idiom used
// elsewhere in the corpus for mapping over large slices. This bounds
// memory and goroutine pressure from constructing a very large batch;
// it is independent of, and in addition to, the Executor's own fixed
// worker count. Futures are returned in the same order as fns.
//
// InvokeAllBounded blocks until every Future has been submitted, not
// until they have finished; use WhenAll or WaitAllContext for that.
func InvokeAllBounded[T any](e *Executor, labelPrefix string, fns []func() (T, error), maxInFlight int) []*task.Future[T] {
	if maxInFlight < 1 {
		maxInFlight = 1
	}

	out := make([]*task.Future[T], len(fns))
	sem := semaphore.NewWeighted(int64(maxInFlight))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i, fn := range fns {
		_ = sem.Acquire(ctx, 1)

		wg.Add(1)
		go func(i int, fn func() (T, error)) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = Invoke(e, fmt.Sprintf("%s[%d]", labelPrefix, i), fn)
		}(i, fn)
	}
	wg.Wait()

	return out
}

// WaitAllContext waits for every element of tasks to finish, or for ctx
// to expire, whichever happens first, using an errgroup.Group the same
// way the corpus's own DAG-of-goroutines runner waits on a set of
// interdependent tasks. It returns ctx's error if it expired before
// every task finished, or nil once they have all finished. It is pure
// sugar over task.Task.WaitContext and never affects whether any task
// in tasks actually runs.
func (e *Executor) WaitAllContext(ctx context.Context, tasks ...*task.Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return t.WaitContext(gctx)
		})
	}
	return g.Wait()
}
