package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Upload.MaxBytes != 524288000 {
		t.Errorf("max_bytes = %d, want 524288000", cfg.Upload.MaxBytes)
	}
	if len(cfg.Stages) != 3 {
		t.Errorf("expected 3 stages, got %d", len(cfg.Stages))
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	orig := Default()
	orig.BackendURL = "http://backend.test:9000"
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://backend.test:9000" {
		t.Errorf("backend_url = %q", cfg.BackendURL)
	}
	if len(cfg.Upload.AllowedTypes) != 3 {
		t.Errorf("allowed_types = %v", cfg.Upload.AllowedTypes)
	}
}

func TestLoad_EnvOverridesBackendURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv(BackendURLEnv, "http://override.test:8111")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://override.test:8111" {
		t.Errorf("env override not applied, backend_url = %q", cfg.BackendURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no backend url", func(c *Config) { c.BackendURL = "" }},
		{"zero max bytes", func(c *Config) { c.Upload.MaxBytes = 0 }},
		{"no allowed types", func(c *Config) { c.Upload.AllowedTypes = nil }},
		{"no stages", func(c *Config) { c.Stages = nil }},
		{"unnamed stage", func(c *Config) { c.Stages[0].Name = "" }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidate_DemoModeWithoutBackend(t *testing.T) {
	cfg := Default()
	cfg.BackendURL = ""
	cfg.DemoMode = true
	if err := cfg.validate(); err != nil {
		t.Errorf("demo mode should not require a backend: %v", err)
	}
}

func TestUpload_AllowsType(t *testing.T) {
	u := Default().Upload
	if !u.AllowsType("video/mp4") {
		t.Error("video/mp4 should be allowed")
	}
	if u.AllowsType("application/pdf") {
		t.Error("application/pdf should not be allowed")
	}
}

func TestLoad_GarbageYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("{{{not yaml"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
