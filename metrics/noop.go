package metrics

// Noop is a Provider whose instruments discard every measurement. It is the
// default provider; all methods are safe for concurrent use and do no work.
type Noop struct{}

// NewNoop constructs a Provider that discards all metrics.
func NewNoop() Noop { return Noop{} }

func (Noop) Counter(string, ...InstrumentOption) Counter {
	return noopInstrument{}
}

func (Noop) UpDownCounter(string, ...InstrumentOption) UpDownCounter {
	return noopInstrument{}
}

func (Noop) Histogram(string, ...InstrumentOption) Histogram {
	return noopInstrument{}
}

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}
