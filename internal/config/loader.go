package config

import (
	"log/slog"
	"os"
)

// Loader resolves configuration with layered precedence.
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
}

// NewLoader creates a Loader. A nil logger uses slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, getenv: os.Getenv}
}

// Load resolves configuration in this order:
//  1. defaults
//  2. the YAML file at path, when path is non-empty
//  3. PATINA_* environment variables
//  4. overrides (command-line flags)
func (l *Loader) Load(path string, overrides *Config) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config file", slog.String("path", path))
		cfg.Merge(fileCfg)
	}

	cfg.ApplyEnv(l.getenv)
	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
