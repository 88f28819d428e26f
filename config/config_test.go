package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/EPH4-AI/ai-rag-chunkenizer/chunker"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxTokens != 1000 || cfg.OverlapTokens != 100 || cfg.Model != "gpt-4" || cfg.Concurrency != 4 {
		t.Errorf("defaults %+v", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CHUNKENIZER_MAX_TOKENS", "500")
	t.Setenv("CHUNKENIZER_MODEL", "gpt-3.5-turbo")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxTokens != 500 || cfg.Model != "gpt-3.5-turbo" {
		t.Errorf("env override ignored: %+v", cfg)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunkenizer.yaml")
	if err := os.WriteFile(path, []byte("max_tokens: 256\noverlap_tokens: 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxTokens != 256 || cfg.OverlapTokens != 32 {
		t.Errorf("yaml overlay ignored: %+v", cfg)
	}
	if cfg.Model != "gpt-4" {
		t.Errorf("unset yaml keys should keep env defaults, model %q", cfg.Model)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CHUNKENIZER_MAX_TOKENS", "0")

	if _, err := Load(""); !errors.Is(err, chunker.ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
