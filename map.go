package taskrt

import (
	"context"

	"github.com/coredrift/taskrt/task"
)

// Map applies fn to each item concurrently via RunAll and returns the
// per-item results alongside the aggregated error. Ordering and failure
// handling follow whichever Options are given (see RunAll).
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	tasks := make([]task.Task[R], 0, len(items))
	for i := range items {
		item := items[i]
		tasks = append(tasks, task.TaskFunc[R](func(c context.Context) (R, error) { return fn(c, item) }))
	}
	return RunAll[R](ctx, tasks, opts...)
}
