// Package whispercpp provides the in-process resident model for the hot
// path, backed by the whisper.cpp Go bindings.
//
// Builds tagged `nowhispercpp` swap in a stub so the rest of the tree
// compiles without the whisper.cpp C library.
package whispercpp

import "path/filepath"

// Config controls the resident whisper.cpp model.
type Config struct {
	// Model is the model identifier (e.g. "medium").
	Model string `yaml:"model" mapstructure:"model"`
	// CacheDir holds the ggml weight files.
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
	// Threads caps decoder threads; 0 lets the bindings pick.
	Threads int `yaml:"threads" mapstructure:"threads"`
}

// WeightsPath returns the conventional ggml weights location for the model.
func (c Config) WeightsPath() string {
	return filepath.Join(c.CacheDir, "ggml-"+c.Model+".bin")
}
