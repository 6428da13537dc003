// Package taskrt is a cooperative task runtime: a chainable Task/Promise/
// Future algebra, a lock-free FIFO feeding a fixed worker pool, and the
// synchronization primitives that make the pool correct. New, Run,
// RunAll, Map and ForEach are the common entry points: New constructs a
// shared pool.Pool, Run drives a single task on the default runner, and
// RunAll/Map/ForEach fan work out across a pool and collect results.
// Lower-level building blocks live in the task, future, runner, pool,
// fifo, awaiter and reactor subpackages.
//
// Defaults
// Unless overridden via Option, RunAll/Map/ForEach:
//   - run on a freshly-created, default-sized pool.Pool that is started
//     and stopped for the duration of the call
//   - return results in completion order
//   - run every task regardless of earlier failures
//
// Use WithPool to share a long-lived pool across calls, WithPreserveOrder
// to get results back in input order, and WithStopOnError to cancel the
// tasks' shared context after the first failure.
package taskrt

import (
	"github.com/coredrift/taskrt/runner"
	"github.com/coredrift/taskrt/task"
)

// Task is re-exported so callers need not import the task package
// directly just to name the type; TaskFunc/TaskValue/TaskError/Make
// remain in package task since Go cannot alias generic functions.
type Task[T any] = task.Task[T]

// Delay returns a task that completes after d elapses, the same
// sleep-on-worker contract as runner.Delay.
var Delay = runner.Delay
