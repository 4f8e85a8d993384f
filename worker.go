package taskman

import (
	"fmt"
	"time"
)

// runWorker is the consume-or-wait loop of the worker bound to ordinal.
// It pops tasks until the queue reports stopping-and-empty, parking on the
// queue's wake signal when there is nothing to do. The busy counter tracks
// workers that are neither parked nor exited, so busy == 0 means every
// worker is asleep or gone.
func (m *Manager) runWorker(ordinal int) {
	defer m.wg.Done()
	defer m.busy.Add(-1)
	for {
		t, ok := m.queue.take(m.onPark)
		if !ok {
			return
		}
		m.runTask(t, ordinal)
	}
}

// onPark is called by the queue around a worker parking on the wake signal.
func (m *Manager) onPark(parked bool) {
	if parked {
		m.busy.Add(-1)
	} else {
		m.busy.Add(1)
	}
}

// runTask executes one task with the current value of the worker's scratch
// slot. A panic inside the task is recovered, wrapped with ErrTaskPanicked,
// and handed to the configured panic handler; the worker stays alive either
// way. The task itself is gone after this returns, it is never re-run.
func (m *Manager) runTask(t Task, ordinal int) {
	scratch := m.scratch.Load().get(ordinal)

	m.instr.running.Add(1)
	start := time.Now()
	defer func() {
		m.instr.duration.Record(time.Since(start).Seconds())
		m.instr.running.Add(-1)
		m.instr.executed.Add(1)
		if r := recover(); r != nil {
			m.instr.panics.Add(1)
			if m.cfg.PanicHandler != nil {
				m.cfg.PanicHandler(fmt.Errorf("%w: %v", ErrTaskPanicked, r))
			}
		}
	}()

	t(scratch)
}
