package task

import (
	"context"

	"github.com/coredrift/taskrt/future"
)

// Task is a chain of steps bound to the promise that will carry its
// eventual result. Task values are built with TaskFunc/TaskValue/
// TaskError and extended with Then; they become runnable once handed to
// a Runner.
type Task[T any] struct {
	chain *Chain[T]
	id    string
}

// TaskFunc builds a single-step Task from a callable that may fail.
func TaskFunc[T any](fn func(context.Context) (T, error)) Task[T] {
	return Task[T]{chain: (&Chain[T]{}).Then(FromFunc(fn))}
}

// TaskValue builds a single-step Task from a callable that cannot fail.
func TaskValue[T any](fn func(context.Context) T) Task[T] {
	return Task[T]{chain: (&Chain[T]{}).Then(FromValue(fn))}
}

// TaskError builds a single-step Task from a callable that returns only
// an error, over a result type whose zero value stands for success.
func TaskError[T any](fn func(context.Context) error) Task[T] {
	return Task[T]{chain: (&Chain[T]{}).Then(FromAction[T](fn))}
}

// Make builds a Task directly from a Step, mirroring the free function
// of the same purpose in the runtime this package is modeled on.
func Make[T any](step Step[T]) Task[T] {
	return Task[T]{chain: (&Chain[T]{}).Then(step)}
}

// ID returns the task's identifier, or "" if none was set with WithID.
func (t Task[T]) ID() string { return t.id }

// WithID returns a copy of t carrying the given identifier, used by
// callers that need to correlate results back to their originating
// task (e.g. preserve-order helpers).
func (t Task[T]) WithID(id string) Task[T] {
	t.id = id
	return t
}

// Then appends another step to the task's chain.
func (t Task[T]) Then(step Step[T]) Task[T] {
	c := &Chain[T]{}
	c.Append(t.chain)
	c.Then(step)
	t.chain = c
	return t
}

// ThenTask transfers other's chain onto the end of t's, so other's steps
// run, in order, after t's own. other is left unmodified; its steps are
// copied onto a fresh chain.
func (t Task[T]) ThenTask(other Task[T]) Task[T] {
	c := &Chain[T]{}
	c.Append(t.chain)
	c.Append(other.chain)
	t.chain = c
	return t
}

// Closure binds a Task to a fresh promise and execution context, and
// drives it one step at a time via Execute/Next/Complete. A Runner calls
// these three methods; user code never does.
func (t Task[T]) Closure(ctx context.Context) *Closure[T] {
	var head *chainNode[T]
	if t.chain != nil {
		head = t.chain.head
	}
	return &Closure[T]{
		ctx:     ctx,
		cur:     head,
		tc:      &Context[T]{},
		promise: future.New[T](),
	}
}

// Closure is the unit of work a Runner schedules: one Execute/Next cycle
// per chain step, followed by exactly one Complete.
type Closure[T any] struct {
	ctx     context.Context
	cur     *chainNode[T]
	tc      *Context[T]
	promise *future.Promise[T]
}

// Future returns the future that will carry this closure's eventual
// result once Complete runs.
func (cl *Closure[T]) Future() future.Future[T] { return cl.promise.GetFuture() }

// Execute runs the current step, recovering a panic into a recorded
// exception the same way a returned error would be recorded.
func (cl *Closure[T]) Execute() {
	if cl.cur == nil {
		return
	}
	step := cl.cur.step
	func() {
		defer func() {
			if r := recover(); r != nil {
				cl.tc.SetException(panicError{r})
			}
		}()
		v, err := step(cl.ctx, cl.tc)
		if err != nil {
			cl.tc.SetException(err)
			return
		}
		cl.tc.SetResult(v)
	}()
}

// Next advances to the next chain step and reports whether there is one
// left to run. Once a failure has been recorded, remaining steps are
// skipped and Next returns false even if more nodes exist.
func (cl *Closure[T]) Next() bool {
	if !cl.tc.IsSuccess() {
		return false
	}
	if cl.cur == nil {
		return false
	}
	cl.cur = cl.cur.next
	return cl.cur != nil
}

// Complete settles the closure's promise. It must be called exactly once,
// after Execute/Next have finished driving the chain.
func (cl *Closure[T]) Complete() {
	switch {
	case cl.tc.Err() != nil:
		cl.promise.SetException(cl.tc.Err(), true)
	case cl.tc.settled():
		cl.promise.SetValue(cl.tc.Result(), true)
	default:
		cl.promise.SetException(ErrEmptyTask, true)
	}
}

type panicError struct{ v any }

func (p panicError) Error() string { return "task step panicked: " + errString(p.v) }

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic value"
}
