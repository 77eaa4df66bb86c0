package process

import "time"

// Outcome holds the output and status of a finished worker subprocess.
type Outcome struct {
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error (worker diagnostics).
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
	// TimedOut is true when the process was killed because the context
	// deadline elapsed.
	TimedOut bool
	// Cancelled is true when the process was killed by an external
	// cancellation rather than a deadline.
	Cancelled bool
}
