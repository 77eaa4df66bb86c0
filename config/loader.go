package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configSearchPaths are tried in order when no explicit file is given.
var configSearchPaths = []string{
	"./config.yml",
	"./config/config.yml",
	"/etc/whisperd/config.yml",
}

// envSearchPaths are tried in order for a .env file.
var envSearchPaths = []string{
	".env.whisperd",
	".env",
}

// Load reads the configuration from configFile (or the standard search
// paths when empty), overlays environment variables, applies defaults, and
// validates the result.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile == "" {
		configFile = firstExisting(configSearchPaths)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	if envFile := firstExisting(envSearchPaths); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix("WHISPERD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvOverrides(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyLegacyEnv(&cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyLegacyEnv honors the original daemon's environment variables.
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("WHISPER_MODEL"); v != "" {
		cfg.Model = v
	}
	if strings.ToLower(os.Getenv("DEBUG")) == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("MAX_COLD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scheduler.MaxColdWorkers = n
		}
	}
}

// bindEnvOverrides makes WHISPERD_-prefixed environment variables visible to
// Unmarshal. AutomaticEnv only surfaces env values for keys viper already
// knows from the config file, so each variable is Set explicitly under every
// nesting its underscore-separated name may address.
func bindEnvOverrides(v *viper.Viper) {
	const prefix = "WHISPERD_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants expands an underscored env key into the config keys it may
// mean: WHISPERD_SCHEDULER_MAX_COLD_WORKERS must reach
// scheduler.max_cold_workers, not just scheduler.max.cold.workers.
func envKeyVariants(key string) []string {
	parts := strings.Split(key, "_")
	if len(parts) <= 1 {
		return []string{key}
	}
	variants := []string{
		key,
		strings.ReplaceAll(key, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
