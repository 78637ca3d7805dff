package task

import "errors"

// ErrCanceled is returned by Future.Get when the underlying Task was
// canceled before it ran. Cancellation is a distinct terminal state, not
// a user-callable error; this sentinel lets callers distinguish it from
// one without inspecting IsCanceled themselves.
var ErrCanceled = errors.New("task: canceled")
