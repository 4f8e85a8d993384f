package taskman

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a single, opaque unit of work. It receives the current value of the
// executing worker's scratch slot and returns nothing to the pool. A task is
// owned by the pool from Submit until it has run (or been discarded) and is
// executed at most once.
type Task func(scratch any)

// Manager owns a set of worker goroutines consuming a shared FIFO queue, the
// per-worker scratch slot table, and the pool lifecycle state. Manager is a
// concrete struct; methods are safe for concurrent use. Construct via New.
type Manager struct {
	// noCopy prevents accidental copying of the controller.
	//go:nocopy
	nc noCopy

	cfg   config
	instr instruments

	queue   *pendingQueue
	scratch atomic.Pointer[scratchTable]

	// lifecycle
	state     atomic.Int32 // holds a state value
	closed    atomic.Bool
	closeOnce sync.Once

	// lifecycleMu serializes Resize, Cancel, and Shutdown so no caller ever
	// observes a half-resized pool. Submit and Wait stay lock-free.
	lifecycleMu sync.Mutex
	spawned     bool // at least one Resize completed (guarded by lifecycleMu)

	// worker set
	workers atomic.Int64 // current worker count
	busy    atomic.Int64 // workers neither parked idle nor exited
	wg      sync.WaitGroup
}

// noCopy is a vet-recognized marker to discourage copying types with this
// field embedded. It works with the "-copylocks" analyzer via the presence of
// Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Manager using functional options and spawns the initial
// worker set. By default the worker count equals the platform core count.
func New(opts ...Option) (*Manager, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:   cfg,
		instr: newInstruments(cfg.Metrics),
		queue: newPendingQueue(),
	}
	m.state.Store(int32(stateStopping))
	m.scratch.Store(newScratchTable(1))

	// The constructor goes through the same path as a live resize.
	m.Resize(cfg.WorkerCount, true)
	return m, nil
}

// Submit hands a task to the pool. It reports whether the task was accepted:
// submissions while the pool is not Running are silently dropped (false),
// which is by design and not an error. With a worker count of zero the task
// runs synchronously on the calling goroutine using scratch slot 0 and
// Submit returns only after the task body has finished.
func (m *Manager) Submit(t Task) bool {
	if t == nil {
		return false
	}
	if m.getState() != stateRunning {
		m.instr.dropped.Add(1)
		return false
	}
	m.instr.submitted.Add(1)

	if m.workers.Load() == 0 {
		// direct-call mode
		m.runTask(t, 0)
		return true
	}

	m.queue.push(t)
	return true
}

// Resize changes the number of workers. It is a mini lifecycle: the pool
// moves to Stopping, existing workers drain the queue (waitForDrain) or the
// queue is discarded and only in-flight tasks finish (!waitForDrain), all
// workers are joined, the scratch table is reallocated zeroed, and a fresh
// worker set is spawned under Paused before the pool returns to Running.
//
// n < 0 selects the platform core count. n == 0 removes all workers and
// makes Submit synchronous. Resizing to the current count is a no-op.
// Calling Resize after Shutdown is a programming error and panics.
func (m *Manager) Resize(n int, waitForDrain bool) {
	if n < 0 {
		n = runtime.NumCPU()
	}

	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	// checked under lifecycleMu so a Resize racing Shutdown cannot respawn
	// workers after teardown
	if m.closed.Load() {
		panic(Namespace + ": Resize called after Shutdown")
	}

	if m.spawned && n == int(m.workers.Load()) {
		return
	}

	m.stop(waitForDrain)
	m.spawn(n)
	m.spawned = true
}

// stop moves the pool to Stopping and joins the current worker set. With
// waitForDrain the queue is consumed to empty first; otherwise queued tasks
// are discarded and only tasks already executing complete. Caller holds
// lifecycleMu.
func (m *Manager) stop(waitForDrain bool) {
	m.setState(stateStopping)
	if !waitForDrain {
		m.instr.discarded.Add(int64(m.queue.clear()))
	}
	m.queue.stop()
	m.wg.Wait()
}

// spawn reallocates the scratch table and starts n workers bound to ordinals
// [0, n). The pool is Paused while workers come up. Caller holds lifecycleMu
// and the previous worker set must have exited.
func (m *Manager) spawn(n int) {
	m.queue.reset()
	m.scratch.Store(newScratchTable(n))
	m.workers.Store(int64(n))
	m.busy.Store(int64(n))

	m.setState(statePaused)
	m.wg.Add(n)
	for i := 0; i < n; i++ {
		go m.runWorker(i)
	}
	m.setState(stateRunning)
}

// Wait blocks until the queue is empty and no worker is executing a task,
// polling at the configured interval. It does not prevent concurrent Submit
// or Resize calls from racing it; callers needing a true quiescent point
// must stop submitting first.
func (m *Manager) Wait() {
	m.WaitEvery(m.cfg.PollInterval)
}

// WaitEvery is Wait with an explicit poll interval for this call.
// Non-positive intervals fall back to the configured one.
func (m *Manager) WaitEvery(poll time.Duration) {
	if poll <= 0 {
		poll = m.cfg.PollInterval
	}
	for m.queue.len() > 0 || m.busy.Load() > 0 {
		time.Sleep(poll)
	}
}

// Cancel discards every queued task without executing it, waits for tasks
// already in flight to finish, and resumes. The pool is Paused for the
// duration, so concurrent submissions are dropped. Cancellation is
// cooperative at whole-task granularity: a task mid-execution is never
// interrupted.
func (m *Manager) Cancel() {
	m.CancelEvery(m.cfg.PollInterval)
}

// CancelEvery is Cancel with an explicit poll interval for this call.
func (m *Manager) CancelEvery(poll time.Duration) {
	if poll <= 0 {
		poll = m.cfg.PollInterval
	}

	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	if m.getState() != stateRunning {
		return
	}
	m.setState(statePaused)
	m.instr.discarded.Add(int64(m.queue.clear()))
	for m.queue.len() > 0 || m.busy.Load() > 0 {
		time.Sleep(poll)
	}
	m.setState(stateRunning)
}

// Shutdown tears the pool down: Stopping, wake all workers, join all.
// With waitForDrain every queued task executes first; otherwise queued tasks
// are discarded and only in-flight ones complete. Shutdown is idempotent;
// after it returns, Submit drops all tasks and Resize panics.
func (m *Manager) Shutdown(waitForDrain bool) {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.lifecycleMu.Lock()
		defer m.lifecycleMu.Unlock()

		m.stop(waitForDrain)
		m.workers.Store(0)
	})
}

// Close shuts the pool down, draining all queued work first. It is the
// counterpart of New for use with defer.
func (m *Manager) Close() {
	m.Shutdown(true)
}

// SetScratchSlot assigns the scratch value for the worker with the given
// ordinal. The pool does not own the value; the caller remains responsible
// for its lifetime and for not mutating a slot whose worker may be mid-task.
// The call is a silent no-op while the pool is Stopping. An out-of-range
// index is a programming error and panics.
func (m *Manager) SetScratchSlot(index int, value any) {
	if m.getState() == stateStopping {
		return
	}
	m.scratch.Load().set(index, value)
}

// WorkerCount returns the current number of workers. Zero means Submit runs
// tasks synchronously.
func (m *Manager) WorkerCount() int {
	return int(m.workers.Load())
}

// QueuedTaskCount returns the number of tasks queued and not yet started.
func (m *Manager) QueuedTaskCount() int {
	return m.queue.len()
}

func (m *Manager) getState() state {
	return state(m.state.Load())
}

func (m *Manager) setState(s state) {
	m.state.Store(int32(s))
}
