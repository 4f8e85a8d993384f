package taskman

import "taskman/metrics"

// instruments bundles the pool's metric handles. All instruments come from
// the configured provider; with the default noop provider every record is
// free.
type instruments struct {
	submitted metrics.Counter
	executed  metrics.Counter
	dropped   metrics.Counter
	discarded metrics.Counter
	panics    metrics.Counter
	running   metrics.UpDownCounter
	duration  metrics.Histogram
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		submitted: p.Counter("taskman.tasks.submitted",
			metrics.WithDescription("tasks accepted by Submit"), metrics.WithUnit("1")),
		executed: p.Counter("taskman.tasks.executed",
			metrics.WithDescription("tasks run to completion, including panicked ones"), metrics.WithUnit("1")),
		dropped: p.Counter("taskman.tasks.dropped",
			metrics.WithDescription("submissions rejected while the pool was not running"), metrics.WithUnit("1")),
		discarded: p.Counter("taskman.tasks.discarded",
			metrics.WithDescription("queued tasks cleared by Cancel, Resize, or Shutdown"), metrics.WithUnit("1")),
		panics: p.Counter("taskman.tasks.panicked",
			metrics.WithDescription("tasks that panicked during execution"), metrics.WithUnit("1")),
		running: p.UpDownCounter("taskman.workers.running",
			metrics.WithDescription("workers currently executing a task"), metrics.WithUnit("1")),
		duration: p.Histogram("taskman.task.duration",
			metrics.WithDescription("task execution time"), metrics.WithUnit("seconds")),
	}
}
