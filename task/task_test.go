package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coredrift/taskrt/task"
)

func drive[T any](cl *task.Closure[T]) {
	cl.Execute()
	for cl.Next() {
		cl.Execute()
	}
	cl.Complete()
}

func TestTask_SingleStepSuccess(t *testing.T) {
	tk := task.TaskValue(func(context.Context) int { return 7 })
	cl := tk.Closure(context.Background())
	drive(cl)

	v, err := cl.Future().Result()
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestTask_ChainRunsInOrder(t *testing.T) {
	var order []int
	tk := task.TaskValue(func(context.Context) int {
		order = append(order, 1)
		return 1
	}).Then(func(ctx context.Context, tc *task.Context[int]) (int, error) {
		order = append(order, 2)
		return tc.Result() + 1, nil
	}).Then(func(ctx context.Context, tc *task.Context[int]) (int, error) {
		order = append(order, 3)
		return tc.Result() + 1, nil
	})

	cl := tk.Closure(context.Background())
	drive(cl)

	v, err := cl.Future().Result()
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestTask_FailureSkipsRemainingSteps(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	tk := task.TaskFunc(func(context.Context) (int, error) {
		return 0, boom
	}).Then(func(ctx context.Context, tc *task.Context[int]) (int, error) {
		ran = true
		return 0, nil
	})

	cl := tk.Closure(context.Background())
	drive(cl)

	_, err := cl.Future().Result()
	require.ErrorIs(t, err, boom)
	require.False(t, ran)
}

func TestTask_PanicIsCapturedAsError(t *testing.T) {
	tk := task.TaskValue(func(context.Context) int {
		panic("kaboom")
	})
	cl := tk.Closure(context.Background())
	drive(cl)

	_, err := cl.Future().Result()
	require.Error(t, err)
}

func TestTask_EmptyChainSynthesizesFailure(t *testing.T) {
	empty := task.Task[int]{}
	cl := empty.Closure(context.Background())
	drive(cl)

	_, err := cl.Future().Result()
	require.ErrorIs(t, err, task.ErrEmptyTask)
}

func TestTask_ThenTaskSplicesChainOntoTail(t *testing.T) {
	var order []int

	a := task.TaskValue(func(context.Context) int {
		order = append(order, 1)
		return 1
	})
	other := task.TaskFunc(func(context.Context) (int, error) {
		order = append(order, 2)
		return 2, nil
	}).Then(func(ctx context.Context, tc *task.Context[int]) (int, error) {
		order = append(order, 3)
		return tc.Result(), nil
	})
	d := func(ctx context.Context, tc *task.Context[int]) (int, error) {
		order = append(order, 4)
		return tc.Result() + 10, nil
	}

	tk := a.ThenTask(other).Then(d)

	cl := tk.Closure(context.Background())
	drive(cl)

	v, err := cl.Future().Result()
	require.NoError(t, err)
	require.Equal(t, 12, v)
	require.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestTask_ThenTaskLeavesOtherUnmodified(t *testing.T) {
	other := task.TaskValue(func(context.Context) int { return 5 })

	a := task.TaskValue(func(context.Context) int { return 1 })
	_ = a.ThenTask(other)

	// other must still run as a single step producing 5, unaffected by
	// having been spliced onto a.
	cl := other.Closure(context.Background())
	drive(cl)
	v, err := cl.Future().Result()
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestTask_WithIDRoundTrips(t *testing.T) {
	tk := task.TaskValue(func(context.Context) int { return 1 }).WithID("job-1")
	require.Equal(t, "job-1", tk.ID())
}
