package metrics

// Standard instrument names shared by the pool and reactor packages, so
// a single Provider instance produces consistently named metrics
// regardless of which part of the runtime is recording them.
const (
	NameInFlight   = "taskrt_tasks_inflight"
	NameDispatched = "taskrt_tasks_dispatched_total"
	NameQueueDepth = "taskrt_worker_queue_depth"
	// NameReactorPolls records the number of readiness events returned
	// by each Poller.Poll wake, one sample per wake.
	NameReactorPolls = "taskrt_reactor_poll_wake_events"
)
