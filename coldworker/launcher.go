package coldworker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/logger"
	"github.com/skillsenselab/whisperd/process"
	"github.com/skillsenselab/whisperd/transcription"
)

const (
	defaultPythonBin     = "/usr/local/lib/whisper/bin/python"
	defaultWhisperScript = "/usr/local/lib/whisper/bin/whisper"
	defaultGracePeriod   = 5 * time.Second
)

// Config configures the cold worker launcher.
type Config struct {
	// PythonBin is the interpreter of the whisper virtualenv.
	PythonBin string `yaml:"python_bin" mapstructure:"python_bin"`
	// WhisperScript is the whisper CLI entrypoint inside the virtualenv.
	WhisperScript string `yaml:"whisper_script" mapstructure:"whisper_script"`
	// Model is the model identifier passed to the CLI (e.g. "medium").
	Model string `yaml:"model" mapstructure:"model"`
	// CacheDir holds model weights, temp audio copies, and CLI output files.
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
	// GracePeriod is how long a terminated worker gets between SIGTERM and
	// SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period"`
}

// ApplyDefaults fills zero fields with the conventional install locations.
func (c *Config) ApplyDefaults() {
	if c.PythonBin == "" {
		c.PythonBin = defaultPythonBin
	}
	if c.WhisperScript == "" {
		c.WhisperScript = defaultWhisperScript
	}
	if c.Model == "" {
		c.Model = "medium"
	}
	if c.GracePeriod == 0 {
		c.GracePeriod = defaultGracePeriod
	}
}

// Launcher runs one whisper CLI process per job. It implements
// transcription.Invoker.
type Launcher struct {
	config Config
	log    *logger.Logger
}

// NewLauncher creates a Launcher.
func NewLauncher(cfg Config) *Launcher {
	cfg.ApplyDefaults()
	return &Launcher{
		config: cfg,
		log:    logger.WithComponent("coldworker"),
	}
}

// Invoke transcribes the audio file at audioPath in an isolated worker
// process. The context carries the job's wall-clock deadline; cancelling it
// terminates the worker within the grace period. Temp files are removed on
// every return path.
func (l *Launcher) Invoke(ctx context.Context, audioPath string, opts transcription.Options) (*transcription.Result, error) {
	h := &Handle{
		ID:    uuid.New().String(),
		state: StateSpawned,
	}
	defer h.cleanup()

	// The CLI names its output after the input base name, so the audio copy
	// gets a unique name inside the cache dir.
	h.audioPath = filepath.Join(l.config.CacheDir, h.ID+".wav")
	h.resultPath = filepath.Join(l.config.CacheDir, h.ID+".json")

	if err := copyFile(audioPath, h.audioPath); err != nil {
		h.transition(StateCrashed)
		return nil, errors.Internal(fmt.Errorf("stage audio: %w", err))
	}

	cmd := l.buildCommand(h.audioPath, opts)

	l.log.Debug("spawning worker", logger.Fields(
		"handle_id", h.ID,
		"model", l.config.Model,
	))

	h.transition(StateRunning)
	outcome, err := process.Run(ctx, cmd)
	if err != nil {
		return nil, l.classify(h, outcome, err)
	}

	res, err := l.readResult(h.resultPath)
	if err != nil {
		h.transition(StateCrashed)
		return nil, errors.ProcessCrash(outcome.ExitCode, truncate(string(outcome.Stderr)), err)
	}

	h.transition(StateCompleted)
	l.log.Debug("worker completed", logger.Fields(
		"handle_id", h.ID,
		logger.FieldDuration, outcome.Duration.Milliseconds(),
	))
	return res, nil
}

// classify maps a failed subprocess run to a terminal handle state and a
// typed error.
func (l *Launcher) classify(h *Handle, outcome *process.Outcome, runErr error) error {
	switch {
	case outcome != nil && outcome.TimedOut:
		h.transition(StateTimedOut)
		l.log.Warn("worker timed out", logger.Fields("handle_id", h.ID))
		return errors.ProcessTimeout(outcome.Duration.String())
	case outcome != nil && outcome.Cancelled:
		h.transition(StateCancelled)
		return errors.Cancelled(runErr)
	default:
		h.transition(StateCrashed)
		exitCode := -1
		stderr := ""
		if outcome != nil {
			exitCode = outcome.ExitCode
			stderr = truncate(string(outcome.Stderr))
		}
		l.log.Error("worker crashed", logger.Fields(
			"handle_id", h.ID,
			logger.FieldExitCode, exitCode,
		))
		return errors.ProcessCrash(exitCode, stderr, runErr)
	}
}

// buildCommand assembles the whisper CLI invocation.
func (l *Launcher) buildCommand(audioPath string, opts transcription.Options) process.Command {
	args := []string{
		l.config.WhisperScript, audioPath,
		"--model", l.config.Model,
		"--output_format", "json",
		"--output_dir", l.config.CacheDir,
		"--temperature", strconv.FormatFloat(opts.Temperature, 'f', -1, 64),
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.Prompt != "" {
		args = append(args, "--initial_prompt", opts.Prompt)
	}

	return process.Command{
		Binary:      l.config.PythonBin,
		Args:        args,
		Env:         []string{"WHISPER_CACHE_DIR=" + l.config.CacheDir},
		GracePeriod: l.config.GracePeriod,
	}
}

// cliResult is the JSON document the whisper CLI writes to the output dir.
type cliResult struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// readResult parses the CLI's JSON output file.
func (l *Launcher) readResult(path string) (*transcription.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read worker output: %w", err)
	}

	var parsed cliResult
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("malformed worker output: %w", err)
	}

	res := &transcription.Result{
		Text:     strings.TrimSpace(parsed.Text),
		Language: parsed.Language,
	}
	for _, s := range parsed.Segments {
		res.Segments = append(res.Segments, transcription.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	if n := len(res.Segments); n > 0 {
		res.Duration = res.Segments[n-1].End
	}
	return res, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// truncate caps captured stderr carried in error details.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	const max = 2048
	if len(s) > max {
		return s[:max]
	}
	return s
}
