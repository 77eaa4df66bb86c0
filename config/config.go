package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/whisperd/coldworker"
	"github.com/skillsenselab/whisperd/logger"
	"github.com/skillsenselab/whisperd/observability"
	"github.com/skillsenselab/whisperd/scheduler"
	"github.com/skillsenselab/whisperd/server"
	"github.com/skillsenselab/whisperd/transcription/whispercpp"
)

const defaultCacheRoot = "/opt/ai/models/speech"

// Config is the whisperd service configuration.
type Config struct {
	Environment string `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	// Debug widens logging; it never changes scheduling behavior.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// Model is the whisper model identifier shared by both lanes.
	Model string `yaml:"model" mapstructure:"model" validate:"required"`
	// CacheDir holds model weights and cold-lane scratch files.
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir" validate:"required"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Scheduler     scheduler.Config     `yaml:"scheduler" mapstructure:"scheduler"`
	ColdWorker    coldworker.Config    `yaml:"cold_worker" mapstructure:"cold_worker"`
	Hot           whispercpp.Config    `yaml:"hot" mapstructure:"hot"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills zero fields and propagates the shared model and cache
// settings into both lanes.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Model == "" {
		c.Model = "medium"
	}
	if c.CacheDir == "" {
		root := os.Getenv("XDG_CACHE_HOME")
		if root == "" {
			root = defaultCacheRoot
		}
		c.CacheDir = filepath.Join(root, "whisper")
	}

	c.Logging.ApplyDefaults()
	if c.Debug {
		c.Logging.Level = "debug"
	}
	c.Server.ApplyDefaults()
	c.Scheduler.ApplyDefaults()

	c.ColdWorker.Model = c.Model
	c.ColdWorker.CacheDir = c.CacheDir
	c.ColdWorker.ApplyDefaults()

	c.Hot.Model = c.Model
	c.Hot.CacheDir = c.CacheDir

	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Scheduler.MaxColdWorkers < 1 {
		return fmt.Errorf("scheduler.max_cold_workers must be at least 1 (got: %d)", c.Scheduler.MaxColdWorkers)
	}
	return nil
}
