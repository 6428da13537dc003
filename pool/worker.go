package pool

import (
	"github.com/sirupsen/logrus"

	"github.com/coredrift/taskrt/fifo"
)

// Closure is the minimal surface a Pool needs from a queued unit of work:
// task.Closure[T] satisfies this for any T.
type Closure interface {
	Execute()
	Next() bool
	Complete()
}

// worker owns one FIFO intake queue and drains it on its own goroutine.
// Closures posted to the same worker run in the order they were posted;
// there is no ordering guarantee across workers.
type worker struct {
	id       int
	intake   *fifo.Queue[Closure]
	doorbell chan struct{}
	stopCh   chan struct{}
}

func newWorker(id int) *worker {
	return &worker{
		id:       id,
		intake:   fifo.New[Closure](),
		doorbell: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

func (w *worker) ring() {
	select {
	case w.doorbell <- struct{}{}:
	default:
	}
}

func (w *worker) run(p *Pool) {
	defer p.wg.Done()
	for {
		c, ok := w.intake.PopFront()
		if !ok {
			select {
			case <-w.doorbell:
				continue
			case <-w.stopCh:
				w.drain(p)
				return
			}
		}
		w.process(p, c)
	}
}

// drain runs any closures still queued after a stop request, matching the
// cooperative (non-preemptive) shutdown contract: a worker finishes what
// it already has before exiting.
func (w *worker) drain(p *Pool) {
	for {
		c, ok := w.intake.PopFront()
		if !ok {
			return
		}
		w.process(p, c)
	}
}

func (w *worker) process(p *Pool, c Closure) {
	defer func() {
		if r := recover(); r != nil {
			p.logger().WithFields(logrus.Fields{"worker": w.id, "panic": r}).
				Warn("recovered panic escaping task closure")
		}
		if p.pending.Add(-1) == 0 {
			p.idle.NotifyAll()
		}
		p.inFlight.Add(-1)
	}()

	c.Execute()
	for c.Next() {
		c.Execute()
	}
	c.Complete()
}
