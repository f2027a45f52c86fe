package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "config.yaml"

// Load reads and validates a YAML config file, then applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when the file is missing.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return Default()
}

// Default returns a validated config built from defaults and the environment only.
func Default() (*Config, error) {
	var cfg Config
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads variables from .env files if present. Existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func applyEnv(cfg *Config) {
	if v := env("GENAI_API_KEY"); v != "" {
		cfg.Backend.APIKey = v
	}
	if v := env("SUMMARIZER_BACKEND"); v != "" {
		cfg.Backend.Provider = v
	}
	if v := env("SUMMARIZER_MODEL"); v != "" {
		cfg.Backend.Model = v
	}
	if v := env("PORT"); v != "" {
		cfg.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
