package pool

import "errors"

const namespace = "pool"

var (
	// ErrNotStarted is returned by PostWork before Start has been called.
	ErrNotStarted = errors.New(namespace + ": pool has not been started")
	// ErrStopped is returned by PostWork after Stop has been called.
	ErrStopped = errors.New(namespace + ": pool has been stopped")
)
