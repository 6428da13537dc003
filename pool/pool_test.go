package pool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt/pool"
	"github.com/coredrift/taskrt/task"
)

func noopClosure(fn func()) pool.Closure {
	tk := task.TaskValue(func(context.Context) int {
		fn()
		return 0
	})
	return tk.Closure(context.Background())
}

func TestPool_PostWorkBeforeStartFails(t *testing.T) {
	p := pool.New(pool.WithSize(2))
	err := p.PostWork(noopClosure(func() {}))
	require.ErrorIs(t, err, pool.ErrNotStarted)
}

func TestPool_RunsAllPostedWork(t *testing.T) {
	p := pool.New(pool.WithSize(4))
	p.Start()
	defer p.Stop()

	var count atomic.Int32
	const n = 200
	for i := 0; i < n; i++ {
		require.NoError(t, p.PostWork(noopClosure(func() { count.Add(1) })))
	}

	require.NoError(t, p.WaitForIdle(context.Background()))
	require.EqualValues(t, n, count.Load())
}

func TestPool_PerWorkerFIFOOrdering(t *testing.T) {
	p := pool.New(pool.WithSize(1))
	p.Start()
	defer p.Stop()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, p.PostWork(noopClosure(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})))
	}

	require.NoError(t, p.WaitForIdle(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		require.Equal(t, i, v)
	}
}

func TestPool_StopDrainsQueuedWork(t *testing.T) {
	p := pool.New(pool.WithSize(1))
	p.Start()

	var count atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, p.PostWork(noopClosure(func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		})))
	}
	p.Stop()

	require.EqualValues(t, 20, count.Load())

	err := p.PostWork(noopClosure(func() {}))
	require.ErrorIs(t, err, pool.ErrStopped)
}

func TestPool_WaitForIdleRespectsContext(t *testing.T) {
	p := pool.New(pool.WithSize(1))
	p.Start()
	defer p.Stop()

	block := make(chan struct{})
	require.NoError(t, p.PostWork(noopClosure(func() { <-block })))
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.WaitForIdle(ctx), context.DeadlineExceeded)
}
