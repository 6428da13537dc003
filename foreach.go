package taskrt

import (
	"context"

	"github.com/coredrift/taskrt/task"
)

// ForEach applies fn to each item concurrently via RunAll and returns the
// aggregated error, discarding the (empty) per-item results.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	if len(items) == 0 {
		return nil
	}
	tasks := make([]task.Task[struct{}], 0, len(items))
	for i := range items {
		item := items[i]
		tasks = append(tasks, task.TaskError[struct{}](func(c context.Context) error { return fn(c, item) }))
	}
	_, err := RunAll[struct{}](ctx, tasks, opts...)
	return err
}
