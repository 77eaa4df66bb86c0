//go:build !nowhispercpp

package whispercpp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/skillsenselab/whisperd/logger"
	"github.com/skillsenselab/whisperd/transcription"
)

// Model wraps a loaded whisper.cpp model. It implements
// transcription.Model. Calls are not interruptible once inference starts;
// the scheduler serializes them behind its lock.
type Model struct {
	cfg   Config
	model whisper.Model
	mu    sync.Mutex
	log   *logger.Logger
}

// Load reads the ggml weights into memory. The returned Model must be
// Closed to free them.
func Load(cfg Config) (*Model, error) {
	if cfg.Model == "" {
		cfg.Model = "medium"
	}

	path := cfg.WeightsPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("whispercpp: weights not found at %s: %w", path, err)
	}

	m, err := whisper.New(path)
	if err != nil {
		return nil, fmt.Errorf("whispercpp: load %s: %w", path, err)
	}

	logger.WithComponent("whispercpp").Info("model loaded",
		logger.Fields("model", cfg.Model, "weights", path))

	return &Model{
		cfg:   cfg,
		model: m,
		log:   logger.WithComponent("whispercpp"),
	}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string { return m.cfg.Model }

// Close frees the model weights.
func (m *Model) Close() {
	m.model.Close()
}

// Transcribe runs inference on the audio file at audioPath. The bindings
// share one underlying context, so calls are serialized here as well even
// though the scheduler already guarantees a single caller.
func (m *Model) Transcribe(_ context.Context, audioPath string, opts transcription.Options) (*transcription.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	samples, err := loadWAV(audioPath)
	if err != nil {
		return nil, err
	}

	wctx, err := m.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("whispercpp: new context: %w", err)
	}

	if opts.Language != "" {
		if err := wctx.SetLanguage(opts.Language); err != nil {
			return nil, fmt.Errorf("whispercpp: language %q: %w", opts.Language, err)
		}
	}
	if opts.Prompt != "" {
		wctx.SetInitialPrompt(opts.Prompt)
	}
	if m.cfg.Threads > 0 {
		wctx.SetThreads(uint(m.cfg.Threads))
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whispercpp: inference: %w", err)
	}

	res := &transcription.Result{Language: opts.Language}
	for {
		seg, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("whispercpp: read segment: %w", err)
		}
		res.Segments = append(res.Segments, transcription.Segment{
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
			Text:  seg.Text,
		})
		if res.Text != "" {
			res.Text += " "
		}
		res.Text += seg.Text
	}
	if n := len(res.Segments); n > 0 {
		res.Duration = res.Segments[n-1].End
	}
	return res, nil
}

// loadWAV decodes a mono 16kHz WAV file into float32 samples, the only
// input format the bindings accept.
func loadWAV(path string) ([]float32, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("whispercpp: open audio: %w", err)
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	var buf *audio.IntBuffer
	buf, err = dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("whispercpp: decode wav: %w", err)
	}
	if buf == nil || buf.NumFrames() == 0 {
		return nil, fmt.Errorf("whispercpp: empty audio in %s", path)
	}
	if buf.Format.SampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("whispercpp: unsupported sample rate %d (want %d)", buf.Format.SampleRate, whisper.SampleRate)
	}
	if buf.Format.NumChannels != 1 {
		return nil, fmt.Errorf("whispercpp: unsupported channel count %d (want mono)", buf.Format.NumChannels)
	}
	return buf.AsFloat32Buffer().Data, nil
}
