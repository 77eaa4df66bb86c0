package coldworker

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateTerminal(t *testing.T) {
	terminal := []State{StateCompleted, StateTimedOut, StateCrashed, StateCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
	for _, s := range []State{StateSpawned, StateRunning} {
		if s.Terminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestHandleTerminalStatesSticky(t *testing.T) {
	h := &Handle{state: StateSpawned}

	h.transition(StateRunning)
	if h.State() != StateRunning {
		t.Fatalf("expected running, got %s", h.State())
	}

	h.transition(StateTimedOut)
	if h.State() != StateTimedOut {
		t.Fatalf("expected timed_out, got %s", h.State())
	}

	// A late crash report must not overwrite the recorded timeout.
	h.transition(StateCrashed)
	if h.State() != StateTimedOut {
		t.Errorf("terminal state overwritten: %s", h.State())
	}
	h.transition(StateCompleted)
	if h.State() != StateTimedOut {
		t.Errorf("terminal state overwritten: %s", h.State())
	}
}

func TestHandleCleanupOnce(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.wav")
	result := filepath.Join(dir, "a.json")
	for _, p := range []string{audio, result} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	h := &Handle{audioPath: audio, resultPath: result}
	h.cleanup()

	for _, p := range []string{audio, result} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", p)
		}
	}

	// Second cleanup is a no-op even if a new file appeared at the path.
	if err := os.WriteFile(audio, []byte("y"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	h.cleanup()
	if _, err := os.Stat(audio); err != nil {
		t.Error("repeated cleanup removed a file it no longer owns")
	}
}
