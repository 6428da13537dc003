package taskrt

import "github.com/coredrift/taskrt/pool"

// runConfig holds the parameters RunAll/Map/ForEach are built from.
type runConfig struct {
	pool          *pool.Pool
	ownPool       bool
	preserveOrder bool
	stopOnError   bool
}

// Option configures RunAll/Map/ForEach.
type Option func(*runConfig)

// WithPool runs tasks on an already-started, caller-owned pool instead
// of a freshly created one. The caller remains responsible for starting
// and stopping it.
func WithPool(p *pool.Pool) Option {
	return func(c *runConfig) { c.pool = p }
}

// WithPreserveOrder returns results in input order instead of
// completion order.
func WithPreserveOrder() Option {
	return func(c *runConfig) { c.preserveOrder = true }
}

// WithStopOnError cancels the context shared by the tasks once the first
// failure is observed. Every task is still posted to the pool; only steps
// that observe ctx.Done() stop early.
func WithStopOnError() Option {
	return func(c *runConfig) { c.stopOnError = true }
}

func buildRunConfig(opts []Option) runConfig {
	var c runConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.pool == nil {
		c.pool = pool.New()
		c.ownPool = true
	}
	return c
}
