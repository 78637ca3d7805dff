// Package task implements the unit of work scheduled by package executor:
// a status machine with dependencies, triggers and a deadline governing
// when it becomes ready to run, plus Future, a generic result-bearing task.
//
// CanBeExecuted holds its own Task's mutex while it reads each peer
// task's status through the peer's own mutex, one peer at a time; a status
// read never takes a further lock. Lock acquisitions therefore cannot
// deadlock as long as callers do not build cyclic dependency graphs; see
// Task.DependencyGraph for a diagnostic that can help spot one.
package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.lepak.sg/taskengine/graph"
)

// Status is the lifecycle state of a Task. The only legal transitions are
// from StatusPending to one of the three terminal states; once a Task
// leaves StatusPending its state is frozen.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusFailed
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	default:
		return "<invalid task.Status>"
	}
}

// Runner is implemented by anything an Executor can run to completion.
// Run is called at most once, and only once CanBeExecuted holds. Every
// *Task implements Runner: a bare Task (no run function set) runs to
// completion trivially, and *Future[T] supplies one via NewFuture.
type Runner interface {
	Run() error
}

// Task is the unit of work scheduled by an Executor. It carries a status,
// a readiness descriptor (dependencies, triggers, deadline), a captured
// error, and a wait channel for observers. Future[T] wraps a Task to add
// a result value and the callable that produces it.
//
// A Task's zero value is not usable; construct one with New.
type Task struct {
	mu     sync.Mutex
	status Status
	err    error

	dependencies []*Task
	triggers     []*Task
	deadline     time.Time

	waitCh chan struct{}
	label  string

	run func() error
}

var _ Runner = (*Task)(nil)

// Run invokes the task's run function, if one was set (by NewFuture, or
// a similar constructor), and returns its error. A bare Task with no run
// function set runs to completion trivially, returning nil.
//
// Run is reserved for the Executor that owns this Task and must be
// called at most once; user code must not call it directly.
func (t *Task) Run() error {
	if t.run == nil {
		return nil
	}
	return t.run()
}

// New creates a Task in StatusPending, with no dependencies, no triggers,
// and a deadline of "now", i.e. immediately satisfied. label is optional
// and is used only for diagnostics and logging; it never affects
// scheduling.
func New(label string) *Task {
	return &Task{
		deadline: time.Now(),
		waitCh:   make(chan struct{}),
		label:    label,
	}
}

// Label returns the diagnostic label this Task was constructed with.
func (t *Task) Label() string {
	return t.label
}

// AddDependency registers dep as a dependency: t will not be ready until
// dep reaches any terminal state. Nil dependencies are ignored at
// readiness time. AddDependency must only be called before the Task is
// submitted to an Executor, and panics if dep == t.
func (t *Task) AddDependency(dep *Task) {
	if dep == t {
		panic("task: a task cannot depend on itself")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.dependencies = append(t.dependencies, dep)
}

// AddTrigger registers trig as a trigger: once at least one trigger is
// registered, t is not ready until at least one registered trigger has
// reached a terminal state. AddTrigger must only be called before the
// Task is submitted, and panics if trig == t.
func (t *Task) AddTrigger(trig *Task) {
	if trig == t {
		panic("task: a task cannot trigger off itself")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.triggers = append(t.triggers, trig)
}

// SetTimeTrigger sets the deadline before which t is never ready,
// regardless of its dependencies and triggers. SetTimeTrigger must only
// be called before the Task is submitted.
func (t *Task) SetTimeTrigger(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadline = at
}

// CanBeExecuted evaluates the readiness predicate: all dependencies must
// be finished, the deadline must have passed, and either there are no
// triggers or at least one trigger is finished.
func (t *Task) CanBeExecuted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, dep := range t.dependencies {
		if dep != nil && !dep.IsFinished() {
			return false
		}
	}

	if time.Now().Before(t.deadline) {
		return false
	}

	if len(t.triggers) == 0 {
		return true
	}

	for _, trig := range t.triggers {
		if trig != nil && trig.IsFinished() {
			return true
		}
	}
	return false
}

// Status returns the Task's current status.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// IsCompleted reports whether Run completed without error.
func (t *Task) IsCompleted() bool {
	return t.Status() == StatusCompleted
}

// IsFailed reports whether Run returned (or panicked with) an error.
func (t *Task) IsFailed() bool {
	return t.Status() == StatusFailed
}

// IsCanceled reports whether Cancel took effect on this Task.
func (t *Task) IsCanceled() bool {
	return t.Status() == StatusCanceled
}

// IsFinished reports whether the Task has left StatusPending.
func (t *Task) IsFinished() bool {
	return t.Status() != StatusPending
}

// Err returns the captured error, or nil if the Task did not fail.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Cancel transitions a Pending Task to Canceled and wakes any waiters.
// On a Task that has already finished, Cancel is a no-op: it does not
// preempt a Task that is already running.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPending {
		return
	}
	t.status = StatusCanceled
	close(t.waitCh)
}

// Wait blocks until the Task is finished.
func (t *Task) Wait() {
	<-t.waitCh
}

// WaitContext blocks until the Task is finished or ctx is done, whichever
// happens first. It returns ctx.Err() in the latter case, or nil once the
// Task is finished.
func (t *Task) WaitContext(ctx context.Context) error {
	select {
	case <-t.waitCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fail transitions a Pending Task to Failed, recording err, and wakes any
// waiters. Fail is reserved for the Executor that owns this Task and is a
// no-op on a Task that has already left StatusPending. User code must not
// call it directly.
func (t *Task) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPending {
		return
	}
	t.err = err
	t.status = StatusFailed
	close(t.waitCh)
}

// Complete transitions a Pending Task to Completed and wakes any waiters.
// Complete is reserved for the Executor that owns this Task and is a
// no-op on a Task that has already left StatusPending. User code must not
// call it directly.
func (t *Task) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusPending {
		return
	}
	t.status = StatusCompleted
	close(t.waitCh)
}

// DependencyGraph renders t's transitive dependency and trigger closure
// as a string, using each task's Label (falling back to its pointer
// identity if unlabeled). It is a debugging aid for a pool that appears
// stuck, not a runtime cycle check: the scheduler itself never calls it.
func (t *Task) DependencyGraph() string {
	g := graph.NewAdjacencyListDigraph[string]()

	var visit func(cur *Task)
	seen := make(map[*Task]bool)

	visit = func(cur *Task) {
		if cur == nil || seen[cur] {
			return
		}
		seen[cur] = true
		g.AddNode(cur.name())

		cur.mu.Lock()
		deps := append([]*Task(nil), cur.dependencies...)
		trigs := append([]*Task(nil), cur.triggers...)
		cur.mu.Unlock()

		for _, dep := range deps {
			if dep == nil {
				continue
			}
			g.AddEdge(cur.name(), dep.name())
			visit(dep)
		}
		for _, trig := range trigs {
			if trig == nil {
				continue
			}
			g.AddEdge(cur.name(), trig.name())
			visit(trig)
		}
	}
	visit(t)

	return g.String()
}

func (t *Task) name() string {
	if t.label != "" {
		return t.label
	}
	return fmt.Sprintf("task@%p", t)
}
