package taskrt

import (
	"context"
	"errors"
	"sync"

	"github.com/coredrift/taskrt/runner"
	"github.com/coredrift/taskrt/task"
)

// RunAll runs every task concurrently on a pool (a fresh one by default,
// or the pool supplied via WithPool) and collects their results.
//
// Semantics:
//   - Results are returned in completion order, unless WithPreserveOrder
//     was given, in which case they are returned in input order; a failed
//     task contributes no result in either case.
//   - With WithStopOnError, the shared context is cancelled as soon as the
//     first task fails; tasks already running must check ctx themselves
//     to honor cancellation, since a closure already posted to a worker
//     runs to completion cooperatively rather than being preempted.
//   - The returned error is errors.Join of every task's failure, each
//     tagged with its input index and ID (see ExtractTaskIndex,
//     ExtractTaskID) so a caller holding only the joined error can still
//     identify which task failed.
func RunAll[R any](ctx context.Context, tasks []task.Task[R], opts ...Option) ([]R, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	cfg := buildRunConfig(opts)
	if cfg.ownPool {
		cfg.pool.Start()
		defer cfg.pool.Stop()
	}
	rnr := runner.NewPoolRunner(cfg.pool)

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.stopOnError {
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	n := len(tasks)
	events := make(chan completionEvent[R], n)

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	wg.Add(n)

	for i, t := range tasks {
		i, t := i, t
		cl := t.Closure(runCtx)
		rnr.Run(cl)

		go func() {
			defer wg.Done()
			fut := cl.Future()

			var v R
			var err error
			if werr := fut.Wait(runCtx); werr != nil {
				err = werr
			} else {
				v, err = fut.Result()
			}

			if err != nil {
				mu.Lock()
				errs = append(errs, newTaskTaggedError(err, t.ID(), i))
				mu.Unlock()
				if cancel != nil {
					cancel()
				}
			}

			events <- completionEvent[R]{idx: i, id: t.ID(), val: v, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(events)
	}()

	var results []R
	if cfg.preserveOrder {
		resultsCh := make(chan R, n)
		rdr := newReorderer[R](events, resultsCh)
		go func() {
			rdr.run(ctx)
			close(resultsCh)
		}()
		for v := range resultsCh {
			results = append(results, v)
		}
	} else {
		for ev := range events {
			if ev.err == nil {
				results = append(results, ev.val)
			}
		}
	}

	mu.Lock()
	defer mu.Unlock()
	return results, errors.Join(errs...)
}
