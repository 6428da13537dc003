// Package pool implements the fixed-size worker pool that drives task
// closures posted from a runner.PoolRunner. Each worker owns a lock-free
// FIFO intake queue; PostWork dispatches round-robin across workers, the
// same algorithm the thread pool this package is modeled on uses to
// spread load without a shared intake lock.
package pool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/coredrift/taskrt/awaiter"
	"github.com/coredrift/taskrt/metrics"
)

// Pool is a fixed-size set of workers, each with its own intake queue.
type Pool struct {
	workers []*worker
	next    atomic.Uint64
	pending atomic.Int64
	idle    *awaiter.Awaiter

	cfg Config
	wg  sync.WaitGroup

	started atomic.Bool
	stopped atomic.Bool

	dispatched metrics.Counter
	inFlight   metrics.UpDownCounter
	queueDepth metrics.Histogram
}

// New constructs a Pool. The pool does not start running workers until
// Start is called.
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Size == 0 {
		cfg.Size = uint(runtime.GOMAXPROCS(0))
	}

	p := &Pool{
		cfg:  cfg,
		idle: awaiter.New(),
	}
	p.idle.NotifyAll() // a freshly-constructed pool has nothing pending

	p.dispatched = cfg.Metrics.Counter(metrics.NameDispatched)
	p.inFlight = cfg.Metrics.UpDownCounter(metrics.NameInFlight)
	p.queueDepth = cfg.Metrics.Histogram(metrics.NameQueueDepth)

	p.workers = make([]*worker, cfg.Size)
	for i := range p.workers {
		p.workers[i] = newWorker(i)
	}
	return p
}

func (p *Pool) logger() *logrus.Logger { return p.cfg.Logger }

// Start launches one goroutine per worker. Calling Start more than once
// has no additional effect.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go w.run(p)
		p.logger().WithField("worker", w.id).Debug("pool worker started")
	}
}

// Stop signals every worker to finish its current queue and exit, then
// waits for all worker goroutines to return. Stop is cooperative: a
// worker always finishes closures already queued to it before stopping.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		close(w.stopCh)
	}
	p.wg.Wait()
	p.logger().Debug("pool stopped")
}

// PostWork dispatches c to one of the pool's workers, chosen round-robin,
// and returns immediately. It fails if the pool has not been started or
// has been stopped.
func (p *Pool) PostWork(c Closure) error {
	if !p.started.Load() {
		return ErrNotStarted
	}
	if p.stopped.Load() {
		return ErrStopped
	}

	idx := int(p.next.Add(1)-1) % len(p.workers)
	w := p.workers[idx]

	if p.pending.Add(1) == 1 {
		p.idle.Reset()
	}
	w.intake.PushBack(c)
	w.ring()

	p.dispatched.Add(1)
	p.inFlight.Add(1)
	p.queueDepth.Record(float64(w.intake.NumInserts() - w.intake.NumPops()))

	return nil
}

// WaitForIdle blocks until no work is pending across the whole pool, or
// ctx is done.
func (p *Pool) WaitForIdle(ctx context.Context) error {
	for {
		if p.pending.Load() == 0 {
			return nil
		}
		if err := p.idle.Wait(ctx); err != nil {
			return err
		}
		if p.pending.Load() == 0 {
			return nil
		}
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return len(p.workers) }
