// Package runner provides the Runner abstraction that drives a task
// Closure to completion, plus an inline (synchronous, caller-driven)
// implementation and the process-wide default runner.
package runner

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/coredrift/taskrt/task"
)

// Runner executes task closures to completion. Implementations decide
// where the work runs: on the calling goroutine (Inline) or on a worker
// pool (PoolRunner).
type Runner interface {
	// Run drives cl's Execute/Next cycle and calls Complete exactly once.
	Run(cl runnable)
}

// runnable is the minimal surface a Runner needs from a task.Closure[T];
// it is expressed without a type parameter so Runner itself need not be
// generic.
type runnable interface {
	Execute()
	Next() bool
	Complete()
}

// Inline runs closures synchronously on the calling goroutine.
type Inline struct{}

// Run drives cl to completion on the calling goroutine.
func (Inline) Run(cl runnable) {
	cl.Execute()
	for cl.Next() {
		cl.Execute()
	}
	cl.Complete()
}

// Delay returns a task that sleeps for d and then completes. This is the
// minimum-viable delay contract: the sleep runs on whichever
// goroutine/worker ends up executing the step, rather than being driven
// by a dedicated timer.
func Delay(d time.Duration) task.Task[task.Unit] {
	return task.TaskFunc(func(ctx context.Context) (task.Unit, error) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return task.Unit{}, nil
		case <-ctx.Done():
			return task.Unit{}, ctx.Err()
		}
	})
}

var defaultRunner atomic.Pointer[Runner]

func init() {
	var r Runner = Inline{}
	defaultRunner.Store(&r)
}

// SetDefault installs r as the process-wide default runner. The
// replacement happens-before any subsequent Default call observes it.
func SetDefault(r Runner) {
	defaultRunner.Store(&r)
}

// Default returns the process-wide default runner, Inline{} unless
// SetDefault has replaced it.
func Default() Runner {
	return *defaultRunner.Load()
}
