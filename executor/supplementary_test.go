package executor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestInvokeMemoizedReturnsSameFutureForSameKey(t *testing.T) {
	e := New(2, WithLogger(discardLogger()))

	var calls int32
	fn := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 5, nil
	}

	first := InvokeMemoized(e, "key", fn)
	second := InvokeMemoized(e, "key", fn)

	assert.Same(t, first, second)

	v, err := first.Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}

func TestInvokeMemoizedDistinctKeysRunSeparately(t *testing.T) {
	e := New(2, WithLogger(discardLogger()))

	var calls int32
	fn := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, nil
	}

	a := InvokeMemoized(e, "a", fn)
	b := InvokeMemoized(e, "b", fn)
	assert.NotSame(t, a, b)

	_, _ = a.Get()
	_, _ = b.Get()
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}

func TestInvokeAllBoundedRunsEveryInputInOrder(t *testing.T) {
	e := New(4, WithLogger(discardLogger()))

	fns := make([]func() (int, error), 10)
	for i := range fns {
		i := i
		fns[i] = func() (int, error) {
			return i * i, nil
		}
	}

	futures := InvokeAllBounded(e, "batch", fns, 3)
	assert.Len(t, futures, 10)

	for i, f := range futures {
		v, err := f.Get()
		assert.NoError(t, err)
		assert.Equal(t, i*i, v)
	}

	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}

func TestInvokeAllBoundedPropagatesFailures(t *testing.T) {
	e := New(4, WithLogger(discardLogger()))

	wantErr := errors.New("batch element failed")
	fns := []func() (int, error){
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, wantErr },
	}

	futures := InvokeAllBounded(e, "batch", fns, 1)
	_, err0 := futures[0].Get()
	assert.NoError(t, err0)

	_, err1 := futures[1].Get()
	assert.ErrorIs(t, err1, wantErr)

	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}

func TestWaitAllContextReturnsWhenEveryTaskFinishes(t *testing.T) {
	e := New(4, WithLogger(discardLogger()))

	one := Invoke(e, "one", func() (int, error) { return 1, nil })
	two := Invoke(e, "two", func() (int, error) { return 2, nil })

	err := e.WaitAllContext(context.Background(), one.Task, two.Task)
	assert.NoError(t, err)

	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}

func TestWaitAllContextExpiresBeforeTasksFinish(t *testing.T) {
	e := New(1, WithLogger(discardLogger()))

	slow := Invoke(e, "slow", func() (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := e.WaitAllContext(ctx, slow.Task)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, _ = slow.Get()
	e.StartShutdown()
	e.WaitShutdown()
	goleak.VerifyNone(t)
}
