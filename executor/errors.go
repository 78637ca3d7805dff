package executor

import "errors"

// errNoFinishedInput is the error of a WhenFirst future that ran with no
// finished input. A WhenFirst task is never run until CanBeExecuted holds,
// and for a non-empty input slice that means some trigger is finished, so
// this is reached only when WhenFirst is given an empty slice: with no
// triggers registered, the future is ready immediately.
var errNoFinishedInput = errors.New("executor: when-first ran with no finished input")
