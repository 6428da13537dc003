package runner

import "github.com/coredrift/taskrt/pool"

// PoolRunner drives closures on a fixed worker pool instead of the
// caller's own goroutine.
type PoolRunner struct {
	Pool *pool.Pool
}

// NewPoolRunner wraps p as a Runner.
func NewPoolRunner(p *pool.Pool) PoolRunner {
	return PoolRunner{Pool: p}
}

// Run posts cl to the underlying pool. Whichever worker picks it up
// drives its Execute/Next/Complete cycle; Run itself does not block on
// completion.
func (r PoolRunner) Run(cl runnable) {
	// PostWork's error is only non-nil if the pool was never started or
	// has been stopped; in that case the closure is driven inline so its
	// future still settles rather than hanging forever.
	if err := r.Pool.PostWork(cl); err != nil {
		Inline{}.Run(cl)
	}
}
