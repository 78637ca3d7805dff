package executor

import (
	"time"

	"go.lepak.sg/taskengine/task"
)

// Invoke creates a Future wrapping fn, with no dependencies and no
// triggers, submits it to e, and returns it.
func Invoke[T any](e *Executor, label string, fn func() (T, error)) *task.Future[T] {
	f := task.NewFuture(label, fn)
	e.Submit(f.Task)
	return f
}

// Then creates a Future wrapping fn with a dependency on input, submits
// it to e, and returns it. fn runs once input is finished, regardless of
// input's outcome; fn may call input.Get(), which returns input's error
// if it failed.
func Then[T, Y any](e *Executor, label string, input *task.Future[T], fn func() (Y, error)) *task.Future[Y] {
	f := task.NewFuture(label, fn)
	f.AddDependency(input.Task)
	e.Submit(f.Task)
	return f
}

// WhenAll creates a Future whose result is the slice of every element of
// all's results, in order, submits it to e, and returns it. The combined
// Future is not ready until every element of all is finished. If any
// element failed or was canceled, calling Get on it during the combined
// Future's run surfaces that error, and the combined Future fails with
// it; any elements after the first failure are never inspected.
func WhenAll[T any](e *Executor, label string, all []*task.Future[T]) *task.Future[[]T] {
	f := task.NewFuture(label, func() ([]T, error) {
		out := make([]T, 0, len(all))
		for _, elem := range all {
			v, err := elem.Get()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})

	for _, elem := range all {
		f.AddDependency(elem.Task)
	}
	e.Submit(f.Task)
	return f
}

// WhenFirst creates a Future with a trigger for every element of all and
// no dependencies, submits it to e, and returns it. Once any element of
// all finishes, the combined Future's callable scans all in order and
// returns the first finished element's Get(); if that element failed,
// the combined Future fails with the same error.
//
// When all is non-empty, the combined Future's sole readiness condition
// is the OR of all's triggers, so the worker that runs it is guaranteed
// to find at least one finished element. When all is empty, no trigger
// is registered, the combined Future is ready at once, and it fails with
// errNoFinishedInput.
func WhenFirst[T any](e *Executor, label string, all []*task.Future[T]) *task.Future[T] {
	f := task.NewFuture(label, func() (T, error) {
		for _, elem := range all {
			if elem.IsFinished() {
				return elem.Get()
			}
		}
		var zero T
		return zero, errNoFinishedInput
	})

	for _, elem := range all {
		f.AddTrigger(elem.Task)
	}
	e.Submit(f.Task)
	return f
}

// WhenAllBeforeDeadline creates a Future with time-trigger deadline and
// no dependencies or triggers beyond it, submits it to e, and returns
// it. Once now is at or past deadline, the callable iterates all and
// appends Get() only for elements that are finished by that moment; the
// result has length at most len(all), and stragglers are silently
// omitted rather than waited for.
func WhenAllBeforeDeadline[T any](e *Executor, label string, all []*task.Future[T], deadline time.Time) *task.Future[[]T] {
	f := task.NewFuture(label, func() ([]T, error) {
		out := make([]T, 0, len(all))
		for _, elem := range all {
			if !elem.IsFinished() {
				continue
			}
			v, err := elem.Get()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})

	f.SetTimeTrigger(deadline)
	e.Submit(f.Task)
	return f
}
