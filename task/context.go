// Package task implements the step/chain/closure algebra: a Task[T] is a
// chain of Steps executed in order by a Runner, threading its result (or
// failure) through a shared Context.
package task

// Context carries the in-flight result of a chain as it moves from step
// to step. A step reads the previous step's result via Result and
// records its own outcome via SetResult or SetException.
type Context[T any] struct {
	result  T
	err     error
	success bool
}

// IsSuccess reports whether the chain is still on its success path: no
// step so far has recorded a failure.
func (c *Context[T]) IsSuccess() bool { return c.err == nil }

// Result returns the most recently recorded value. Its meaning is
// undefined once IsSuccess is false.
func (c *Context[T]) Result() T { return c.result }

// Err returns the recorded failure, or nil if the chain is still
// succeeding.
func (c *Context[T]) Err() error { return c.err }

// SetResult records v as the chain's current value. It does not clear a
// failure recorded by an earlier step (chains skip remaining steps once
// a failure is recorded — see Closure.Next).
func (c *Context[T]) SetResult(v T) {
	c.result = v
	c.success = true
}

// SetException records err as the chain's failure.
func (c *Context[T]) SetException(err error) {
	c.err = err
	c.success = false
}

func (c *Context[T]) settled() bool { return c.success || c.err != nil }
