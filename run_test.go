package taskrt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt"
	"github.com/coredrift/taskrt/task"
)

func TestRun_ReturnsSingleTaskResult(t *testing.T) {
	v, err := taskrt.Run(context.Background(), task.TaskValue(func(context.Context) int { return 7 }))
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestRun_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := taskrt.Run(context.Background(), task.TaskFunc(func(context.Context) (int, error) { return 0, boom }))
	require.ErrorIs(t, err, boom)
}

func TestNew_PoolWorksViaWithPool(t *testing.T) {
	p := taskrt.New()
	p.Start()
	defer p.Stop()

	results, err := taskrt.RunAll(context.Background(), []task.Task[int]{
		task.TaskValue(func(context.Context) int { return 1 }),
		task.TaskValue(func(context.Context) int { return 2 }),
	}, taskrt.WithPool(p))
	require.NoError(t, err)
	require.ElementsMatch(t, []int{1, 2}, results)
}
