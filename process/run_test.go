package process_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/whisperd/process"
)

func TestRunEcho(t *testing.T) {
	outcome, err := process.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", outcome.ExitCode)
	}
	out := strings.TrimSpace(string(outcome.Stdout))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	outcome, err := process.Run(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(outcome.Stdout) != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", outcome.Stdout)
	}
}

func TestRunNonzeroExit(t *testing.T) {
	outcome, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo boom >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if outcome.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", outcome.ExitCode)
	}
	if !strings.Contains(string(outcome.Stderr), "boom") {
		t.Errorf("expected captured stderr, got %q", outcome.Stderr)
	}
	if outcome.TimedOut || outcome.Cancelled {
		t.Error("crash must not be classified as timeout or cancellation")
	}
}

func TestRunTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	outcome, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"5"},
		GracePeriod: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error for timed-out process")
	}
	if outcome == nil {
		t.Fatal("expected outcome for a started process")
	}
	if !outcome.TimedOut {
		t.Error("expected TimedOut to be set")
	}
	if outcome.Cancelled {
		t.Error("deadline must not be classified as external cancellation")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	outcome, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"5"},
		GracePeriod: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error for cancelled process")
	}
	if !outcome.Cancelled {
		t.Error("expected Cancelled to be set")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancellation took too long: %v", elapsed)
	}
}

func TestRunMissingBinary(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
