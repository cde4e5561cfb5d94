// Package config loads and validates the reelops project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BackendURLEnv overrides backend_url from the config file when set.
const BackendURLEnv = "REELOPS_BACKEND_URL"

// Config is the root configuration for a reelops workspace.
type Config struct {
	Version    int           `yaml:"version"`
	BackendURL string        `yaml:"backend_url"`
	DemoMode   bool          `yaml:"demo_mode,omitempty"` // Run without a backend; placeholder campaign.
	Upload     Upload        `yaml:"upload"`
	Stages     []StageConfig `yaml:"stages"`
}

// Upload constrains what may be submitted before any network call happens.
type Upload struct {
	MaxBytes     int64    `yaml:"max_bytes"`
	AllowedTypes []string `yaml:"allowed_types"` // MIME types
}

// StageConfig describes one step of the agent progress display.
type StageConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	DurationSec int    `yaml:"duration_sec"` // Simulated duration; cosmetic only.
}

// Load reads and parses the config file at the given path. The
// REELOPS_BACKEND_URL environment variable wins over backend_url.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if url := os.Getenv(BackendURLEnv); url != "" {
		cfg.BackendURL = url
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Default returns a starter config with the canonical agent stages and the
// backend's upload limits.
func Default() *Config {
	return &Config{
		Version:    1,
		BackendURL: "http://localhost:8000",
		Upload: Upload{
			MaxBytes: 524288000, // 500 MiB
			AllowedTypes: []string{
				"video/mp4",
				"video/quicktime",
				"video/webm",
			},
		},
		Stages: []StageConfig{
			{
				Name:        "Strategy Intelligence Agent",
				Description: "Analyzing transcript and building campaign strategy",
				DurationSec: 2,
			},
			{
				Name:        "Platform Optimization Agent",
				Description: "Generating TikTok-optimized content",
				DurationSec: 3,
			},
			{
				Name:        "Production Task Agent",
				Description: "Breaking production into scheduled tasks",
				DurationSec: 2,
			},
		},
	}
}

func (c *Config) validate() error {
	if c.BackendURL == "" && !c.DemoMode {
		return fmt.Errorf("backend_url is required (or set demo_mode: true)")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("upload.allowed_types must list at least one MIME type")
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("at least one pipeline stage is required")
	}
	for i, s := range c.Stages {
		if s.Name == "" {
			return fmt.Errorf("stage %d: name is required", i+1)
		}
	}
	return nil
}

// AllowsType reports whether the given MIME type may be uploaded.
func (u Upload) AllowsType(mime string) bool {
	for _, t := range u.AllowedTypes {
		if t == mime {
			return true
		}
	}
	return false
}
