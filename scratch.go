package taskman

import (
	"fmt"
	"sync"
)

// scratchTable holds one externally assignable slot per worker ordinal. The
// pool reads a worker's slot once per task under a read lock; it never owns,
// copies, or frees slot contents. Mutating a slot whose worker may currently
// be mid-task is the caller's race to manage.
type scratchTable struct {
	mu    sync.RWMutex
	slots []any
}

// newScratchTable allocates a zeroed table. A table always has at least one
// slot so slot 0 exists for the zero-worker synchronous path.
func newScratchTable(n int) *scratchTable {
	if n < 1 {
		n = 1
	}
	return &scratchTable{slots: make([]any, n)}
}

func (t *scratchTable) set(index int, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.slots) {
		panic(fmt.Sprintf(Namespace+": scratch slot index %d out of range [0,%d)", index, len(t.slots)))
	}
	t.slots[index] = value
}

func (t *scratchTable) get(index int) any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slots[index]
}

func (t *scratchTable) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}
