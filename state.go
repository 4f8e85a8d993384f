package taskman

// state enumerates the pool lifecycle.
//
// Running is the only state in which Submit accepts work. Paused rejects new
// insertions while in-flight tasks finish (Cancel, and the spawn phase of a
// resize). Stopping is the draining-and-teardown state; workers exit once it
// is set and the queue is empty.
type state int32

const (
	stateRunning state = iota
	statePaused
	stateStopping
)

func (s state) String() string {
	switch s {
	case stateRunning:
		return "running"
	case statePaused:
		return "paused"
	case stateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}
