package metrics

import (
	"sync"
	"sync/atomic"
)

// Registry is an in-memory Provider. Instruments are created on first use
// and shared by name afterwards; option metadata from the first creation is
// kept for introspection. Suitable for tests and lightweight applications.
type Registry struct {
	mu         sync.Mutex
	counters   map[string]*Int64Instrument
	updowns    map[string]*Int64Instrument
	histograms map[string]*DurationHistogram
	meta       map[string]InstrumentConfig
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[string]*Int64Instrument),
		updowns:    make(map[string]*Int64Instrument),
		histograms: make(map[string]*DurationHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

// Counter returns the monotonic counter registered under name.
func (r *Registry) Counter(name string, opts ...InstrumentOption) Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &Int64Instrument{}
		r.counters[name] = c
		r.meta[name] = applyOptions(opts)
	}
	return c
}

// UpDownCounter returns the up/down counter registered under name.
func (r *Registry) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.updowns[name]
	if !ok {
		u = &Int64Instrument{}
		r.updowns[name] = u
		r.meta[name] = applyOptions(opts)
	}
	return u
}

// Histogram returns the histogram registered under name.
func (r *Registry) Histogram(name string, opts ...InstrumentOption) Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.histograms[name]
	if !ok {
		h = &DurationHistogram{}
		r.histograms[name] = h
		r.meta[name] = applyOptions(opts)
	}
	return h
}

// CounterValue returns the current value of the named counter, or zero if it
// was never created.
func (r *Registry) CounterValue(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c.Value()
	}
	return 0
}

// UpDownValue returns the current value of the named up/down counter, or
// zero if it was never created.
func (r *Registry) UpDownValue(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.updowns[name]; ok {
		return u.Value()
	}
	return 0
}

// HistogramSnapshot returns a snapshot of the named histogram. The zero
// snapshot is returned for histograms that were never created.
func (r *Registry) HistogramSnapshot(name string) HistSnapshot {
	r.mu.Lock()
	h, ok := r.histograms[name]
	r.mu.Unlock()
	if !ok {
		return HistSnapshot{}
	}
	return h.Snapshot()
}

// Int64Instrument backs both counters and up/down counters.
type Int64Instrument struct {
	val atomic.Int64
}

// Add adds n to the current value.
func (i *Int64Instrument) Add(n int64) { i.val.Add(n) }

// Value returns the current value.
func (i *Int64Instrument) Value() int64 { return i.val.Load() }

// DurationHistogram aggregates count, sum, min, and max of recorded values.
// It keeps no buckets.
type DurationHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds a measurement.
func (h *DurationHistogram) Record(v float64) {
	h.mu.Lock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		if v < h.min {
			h.min = v
		}
		if v > h.max {
			h.max = v
		}
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistSnapshot is an immutable view of a DurationHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state at the time of call.
func (h *DurationHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
