package task

// Future is a Task that additionally captures a result value of type T
// and the callable that produces it. It is the type returned by every
// combinator in package executor.
type Future[T any] struct {
	*Task

	result T
}

// NewFuture creates a Future wrapping fn, in StatusPending, with no
// dependencies, no triggers and a deadline of "now". label is optional
// and only affects diagnostics. The returned Future still needs to be
// given to an Executor via Submit (or, more usually, one of the
// combinators in package executor) before fn will ever run.
func NewFuture[T any](label string, fn func() (T, error)) *Future[T] {
	f := &Future[T]{
		Task: New(label),
	}
	f.Task.run = func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		f.result = v
		return nil
	}
	return f
}

// Get blocks until the Future is finished, then returns its result. If
// the underlying Task failed, Get returns the captured error instead. If
// the Task was canceled, Get returns ErrCanceled.
func (f *Future[T]) Get() (T, error) {
	f.Wait()

	if f.IsFailed() {
		var zero T
		return zero, f.Err()
	}
	if f.IsCanceled() {
		var zero T
		return zero, ErrCanceled
	}
	return f.result, nil
}
