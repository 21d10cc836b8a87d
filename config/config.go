// Package config reads session settings from the environment and an
// optional .env file. Command-line flags override what it returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings a session starts with.
type Config struct {
	Seed       int64  `env:"CRYSTAL_SEED"`        // 0 draws a random seed
	ContentDir string `env:"CRYSTAL_CONTENT_DIR"` // empty plays the embedded world
	Plain      bool   `env:"CRYSTAL_PLAIN"`
	LogFile    string `env:"CRYSTAL_LOG_FILE"`
	History    int    `env:"CRYSTAL_HISTORY" envDefault:"100"`
}

// Load reads the .env files (default ".env"), then parses the environment.
// Missing .env files are ignored; variables already set in the environment
// win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.History < 1 {
		return Config{}, fmt.Errorf("parse env: CRYSTAL_HISTORY must be positive, got %d", cfg.History)
	}
	return cfg, nil
}
