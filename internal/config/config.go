// Package config defines the CLI configuration and its loader.
//
// Values are layered, lowest precedence first: defaults from New, an optional
// YAML file named by CRICMETRICS_CONFIG, then CRICMETRICS_* environment
// variables. Command-line flags are applied on top by the cmd package.
package config

import (
	"context"
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// DBPath is the SQLite dataset store.
	DBPath string `koanf:"db_path" validate:"required"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// Format is the default output format of the stats command.
	Format string `koanf:"format" validate:"oneof=table json csv xlsx"`

	// Top caps rows per printed table; 0 prints every row.
	Top int `koanf:"top" validate:"min=0"`

	// FetchTimeoutSeconds bounds a whole dataset download.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds" validate:"min=1,max=3600"`

	// FetchDir is where downloaded datasets are written.
	FetchDir string `koanf:"fetch_dir" validate:"required"`

	// AnthropicModel is the model used by the analyze command.
	AnthropicModel string `koanf:"anthropic_model" validate:"required"`
}

// New returns a Config populated with defaults. The context is reserved for
// loaders that need one and is currently unused.
func New(_ context.Context) *Config {
	home := userHome()
	return &Config{
		DBPath:              filepath.Join(home, ".cricmetrics", "metrics.db"),
		LogLevel:            "info",
		Format:              "table",
		Top:                 0,
		FetchTimeoutSeconds: 120,
		FetchDir:            filepath.Join(home, ".cricmetrics", "downloads"),
		AnthropicModel:      "claude-haiku-4-5-20251001",
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
