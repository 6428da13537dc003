package taskrt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt"
	"github.com/coredrift/taskrt/pool"
	"github.com/coredrift/taskrt/task"
)

func TestRunAll_WithPoolUsesCallerOwnedPool(t *testing.T) {
	p := pool.New(pool.WithSize(2))
	p.Start()
	defer p.Stop()

	results, err := taskrt.RunAll(context.Background(), []task.Task[int]{
		task.TaskValue(func(context.Context) int { return 42 }),
	}, taskrt.WithPool(p))
	require.NoError(t, err)
	require.Equal(t, []int{42}, results)

	require.NoError(t, p.WaitForIdle(context.Background()))
}
