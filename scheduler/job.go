package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/whisperd/transcription"
)

// Job is one normalized transcription request. It is built once at
// admission, owned exclusively by the Router until terminal, and must be
// Closed by its creator so an owned temp audio file is always removed.
type Job struct {
	// ID uniquely identifies the request.
	ID string
	// AudioPath points at the audio to transcribe.
	AudioPath string
	// Options are the decode parameters.
	Options transcription.Options
	// Deadline bounds the whole job, including slot waits. Zero means the
	// scheduler's default per-job timeout applies.
	Deadline time.Time

	ownsAudio bool
	closeOnce sync.Once
}

// NewJob builds a Job over an existing audio file the caller owns.
func NewJob(audioPath string, opts transcription.Options, deadline time.Time) *Job {
	return &Job{
		ID:        uuid.New().String(),
		AudioPath: audioPath,
		Options:   opts,
		Deadline:  deadline,
	}
}

// NewJobFromBytes builds a Job by writing audio into a temp file under dir.
// The Job owns the file; Close removes it.
func NewJobFromBytes(dir string, audio []byte, opts transcription.Options, deadline time.Time) (*Job, error) {
	j := &Job{
		ID:        uuid.New().String(),
		Options:   opts,
		Deadline:  deadline,
		ownsAudio: true,
	}
	path := filepath.Join(dir, "job-"+j.ID+".wav")
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return nil, fmt.Errorf("write job audio: %w", err)
	}
	j.AudioPath = path
	return j, nil
}

// Close removes the job's temp audio file if the job owns one. It is
// idempotent and safe on every terminal path.
func (j *Job) Close() {
	j.closeOnce.Do(func() {
		if j.ownsAudio && j.AudioPath != "" {
			os.Remove(j.AudioPath)
		}
	})
}
