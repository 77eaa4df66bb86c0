package transcription

import "context"

// Model is the in-process resident backend. A Model call occupies the GPU
// the model is loaded on and is not interruptible mid-inference: once
// started it runs to completion even if the context is cancelled.
type Model interface {
	// Name returns the loaded model identifier (e.g. "medium").
	Name() string
	// Transcribe runs inference on the audio file at audioPath.
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error)
}

// Invoker is the external-process backend. An Invoker call spawns an
// isolated worker process per job; cancelling the context terminates the
// process and releases its transient resources.
type Invoker interface {
	// Invoke transcribes the audio file at audioPath in a worker process.
	Invoke(ctx context.Context, audioPath string, opts Options) (*Result, error)
}
