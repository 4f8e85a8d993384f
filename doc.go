// Package taskman provides a resizable pool of worker goroutines consuming a
// shared FIFO task queue, with pause, cooperative cancellation, draining, and
// cheap per-worker scratch storage.
//
// A Task is an opaque callable taking one scratch value and returning nothing
// to the pool. Tasks submitted by a single goroutine start in submission
// order; tasks run at most once and are never retried.
//
// Basic usage:
//
//	m, err := taskman.New(taskman.WithWorkerCount(4))
//	if err != nil {
//		// invalid option
//	}
//	defer m.Close()
//
//	m.Submit(func(scratch any) {
//		// do work; scratch is this worker's slot value
//	})
//	m.Wait()
//
// Each worker is bound to an ordinal in [0, WorkerCount()) and receives the
// current value of its scratch slot on every task it runs. Slots are assigned
// externally via SetScratchSlot; the pool never owns or frees slot contents.
//
// With a worker count of zero the pool degrades to direct-call mode: Submit
// runs the task synchronously on the calling goroutine using slot 0.
package taskman
