package scheduler

import (
	"time"

	"github.com/skillsenselab/whisperd/transcription"
)

// Path names the execution path a job took.
type Path string

// Execution paths.
const (
	PathHot  Path = "hot"
	PathCold Path = "cold"
	// PathNone marks jobs rejected before either path ran.
	PathNone Path = "none"
)

// Result is the single terminal outcome of a job. It is immutable once
// produced and owned by the Router until handed to the caller.
type Result struct {
	// JobID echoes the job's ID.
	JobID string
	// Transcript is the transcription output; nil when Err is set.
	Transcript *transcription.Result
	// Err is the typed failure (*errors.AppError); nil on success.
	Err error
	// Path is the execution path taken.
	Path Path
	// Elapsed is the wall-clock time from admission to terminal state.
	Elapsed time.Duration
}

// OK reports whether the job produced a transcript.
func (r Result) OK() bool { return r.Err == nil }
