package coldworker

import (
	"os"
	"sync"
)

// State is the lifecycle state of a worker subprocess.
type State string

// Handle states. The four rightmost are terminal.
const (
	StateSpawned   State = "spawned"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateTimedOut  State = "timed_out"
	StateCrashed   State = "crashed"
	StateCancelled State = "cancelled"
)

// Terminal reports whether s is a terminal state.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateTimedOut, StateCrashed, StateCancelled:
		return true
	}
	return false
}

// Handle represents one live worker subprocess and the transient files it
// owns: the temp audio copy fed to the CLI and the JSON result file the CLI
// writes next to it.
type Handle struct {
	// ID is the unique handle id; it doubles as the temp-file base name.
	ID string

	mu    sync.Mutex
	state State

	audioPath  string
	resultPath string

	cleanupOnce sync.Once
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// transition moves the handle to s. Terminal states are sticky: once
// terminal, further transitions are ignored.
func (h *Handle) transition(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Terminal() {
		return
	}
	h.state = s
}

// cleanup removes the handle's temp files. It runs exactly once no matter
// how many terminal paths reach it.
func (h *Handle) cleanup() {
	h.cleanupOnce.Do(func() {
		if h.audioPath != "" {
			os.Remove(h.audioPath)
		}
		if h.resultPath != "" {
			os.Remove(h.resultPath)
		}
	})
}
