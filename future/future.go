// Package future implements the Promise/Future pair a task chain uses to
// hand its eventual result to whoever is waiting on it.
package future

import (
	"context"
	"sync"

	"github.com/coredrift/taskrt/awaiter"
	"github.com/coredrift/taskrt/internal/cell"
)

// Unit stands in for void results. Go generics make a dedicated
// promise<void> specialization unnecessary: Unit is an ordinary
// zero-size type and Promise[Unit] behaves exactly like any other
// instantiation.
type Unit struct{}

// Promise is the write side of a one-shot result channel.
type Promise[T any] struct {
	mu   sync.Mutex
	cell cell.Cell[T]
	wake *awaiter.Awaiter
}

// New returns a fresh, unset Promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{wake: awaiter.New()}
}

// SetValue stores v as the promise's result. If notify is true, waiters
// are woken immediately; otherwise NotifyAll must be called separately
// (useful when a task chain wants to finish bookkeeping before waking
// anyone).
func (p *Promise[T]) SetValue(v T, notify bool) {
	p.mu.Lock()
	p.cell.Set(v)
	p.mu.Unlock()
	if notify {
		p.NotifyAll()
	}
}

// SetException stores err as the promise's failure.
func (p *Promise[T]) SetException(err error, notify bool) {
	p.mu.Lock()
	p.cell.SetErr(err)
	p.mu.Unlock()
	if notify {
		p.NotifyAll()
	}
}

// NotifyAll wakes everyone waiting on the promise's future.
func (p *Promise[T]) NotifyAll() {
	p.wake.NotifyAll()
}

// Reset clears the promise back to empty and rearms its waiter, so the
// same Promise can be reused for a subsequent run.
func (p *Promise[T]) Reset() {
	p.mu.Lock()
	p.cell.Reset()
	p.mu.Unlock()
	p.wake.Reset()
}

// HasValue reports whether the promise currently holds a value.
func (p *Promise[T]) HasValue() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell.State() == cell.HasValue
}

// HasException reports whether the promise currently holds an error.
func (p *Promise[T]) HasException() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell.State() == cell.HasErr
}

// RethrowIfException returns the stored error, or nil if none is set.
func (p *Promise[T]) RethrowIfException() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell.Err()
}

// ReleaseValue returns the stored value. The zero value is returned if
// the promise does not hold one.
func (p *Promise[T]) ReleaseValue() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cell.Value()
}

// GetFuture returns the read side bound to this promise.
func (p *Promise[T]) GetFuture() Future[T] {
	return Future[T]{p: p}
}

// Future is the read side of a one-shot result channel produced by a
// Promise. Its zero value is not usable; obtain one via
// Promise.GetFuture.
type Future[T any] struct {
	p *Promise[T]
}

// Wait blocks until the bound promise is settled or ctx is done.
func (f Future[T]) Wait(ctx context.Context) error {
	return f.p.wake.Wait(ctx)
}

// Result returns the settled value and error. Calling Result before the
// promise settles returns the zero value and a nil error; callers should
// Wait first.
func (f Future[T]) Result() (T, error) {
	if f.p.HasException() {
		var zero T
		return zero, f.p.RethrowIfException()
	}
	return f.p.ReleaseValue(), nil
}
