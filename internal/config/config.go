package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"AI Finance Tracker"`
		DataDir string `envconfig:"DATA_DIR"`
	}

	AI struct {
		APIKey  string `envconfig:"OPENROUTER_API_KEY"`
		BaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
		Model   string `envconfig:"AI_MODEL" default:"anthropic/claude-3-haiku"`
		Mock    bool   `envconfig:"USE_MOCK_DATA" default:"false"`
	}
}

// DataDir resolves the directory holding the local database, defaulting
// to ~/.ai-finance-tracker.
func (c *Config) DataDir() (string, error) {
	if c.App.DataDir != "" {
		return c.App.DataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".ai-finance-tracker"), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
