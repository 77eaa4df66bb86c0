//go:build nowhispercpp

package whispercpp

import (
	"context"
	"fmt"

	"github.com/skillsenselab/whisperd/transcription"
)

// Model is the stub resident model for builds without the whisper.cpp C
// library.
type Model struct {
	cfg Config
}

// Load always fails in this build.
func Load(cfg Config) (*Model, error) {
	return nil, fmt.Errorf("whispercpp: support is disabled in this build")
}

// Name returns the model identifier.
func (m *Model) Name() string { return m.cfg.Model }

// Close releases resources held by the model.
func (m *Model) Close() {}

// Transcribe always fails in this build.
func (m *Model) Transcribe(_ context.Context, _ string, _ transcription.Options) (*transcription.Result, error) {
	return nil, fmt.Errorf("whispercpp: support is disabled in this build")
}
