package taskrt

import (
	"context"

	"github.com/coredrift/taskrt/pool"
	"github.com/coredrift/taskrt/runner"
)

// New constructs a pool.Pool, letting a caller own a shared pool's
// lifecycle (Start/Stop) and hand it to RunAll/Map/ForEach via WithPool,
// the same role the teacher's Workers constructor fills for its own
// package. The returned pool is not started automatically.
func New(opts ...pool.Option) *pool.Pool {
	return pool.New(opts...)
}

// Run executes a single task on the process-wide default runner
// (runner.Default, Inline unless replaced via runner.SetDefault) and
// blocks until it settles or ctx is done.
func Run[T any](ctx context.Context, t Task[T]) (T, error) {
	cl := t.Closure(ctx)
	runner.Default().Run(cl)

	fut := cl.Future()
	if err := fut.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	return fut.Result()
}
