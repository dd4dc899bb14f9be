package handoff

import "sync/atomic"

// WorkerState represents the current state of a worker in its lifecycle
type WorkerState int32

const (
	StateCreated WorkerState = iota
	StateRunning
	StateTerminated
)

// String returns a human-readable representation of the worker state
func (s WorkerState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

type workerState struct {
	state atomic.Int32
}

func (ws *workerState) getState() WorkerState {
	return WorkerState(ws.state.Load())
}

func (ws *workerState) setState(newState WorkerState) {
	ws.state.Store(int32(newState))
}
