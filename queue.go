package taskman

import (
	"sync"
	"sync/atomic"
)

// pendingQueue is the thread-safe FIFO of not-yet-started tasks. It owns the
// lock and the wake signal used by parked workers. The queued length is kept
// in an atomic so observers can read it without taking the lock.
type pendingQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []Task
	queued   atomic.Int64
	stopping bool
}

func newPendingQueue() *pendingQueue {
	q := &pendingQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends t to the tail and wakes one parked worker.
// Pushes whose critical sections do not overlap are dequeued in that order.
func (q *pendingQueue) push(t Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.queued.Store(int64(len(q.items)))
	q.mu.Unlock()
	q.cond.Signal()
}

// take removes and returns the head task. When the queue is empty it parks
// the caller on the wake signal until work arrives or stop is called; onPark
// is invoked with true before blocking and false after waking, so the caller
// can maintain its busy accounting. Returns ok == false only when the queue
// is stopping and empty, which lets workers drain remaining tasks during a
// waited teardown. Spurious wakes simply re-check the emptiness condition.
func (q *pendingQueue) take(onPark func(parked bool)) (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.stopping {
			return nil, false
		}
		onPark(true)
		q.cond.Wait()
		onPark(false)
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil // release the backing array
	}
	q.queued.Store(int64(len(q.items)))
	return t, true
}

// clear discards all queued tasks without executing them and reports how many
// were discarded.
func (q *pendingQueue) clear() int {
	q.mu.Lock()
	n := len(q.items)
	q.items = nil
	q.queued.Store(0)
	q.mu.Unlock()
	return n
}

// stop marks the queue as stopping and wakes every parked worker. Workers
// keep draining tasks still queued; they exit once the queue is empty.
func (q *pendingQueue) stop() {
	q.mu.Lock()
	q.stopping = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// reset clears the stopping mark so a fresh worker set can consume again.
// Must only be called once the previous worker set has exited.
func (q *pendingQueue) reset() {
	q.mu.Lock()
	q.stopping = false
	q.mu.Unlock()
}

// len reports the number of queued tasks without taking the lock.
func (q *pendingQueue) len() int {
	return int(q.queued.Load())
}
