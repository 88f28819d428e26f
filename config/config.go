// Package config loads the chunking defaults from the environment, an
// optional .env file and an optional YAML file. Flags layered on top by the
// CLI take precedence over all of them.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/EPH4-AI/ai-rag-chunkenizer/chunker"
)

type Config struct {
	MaxTokens     int    `env:"CHUNKENIZER_MAX_TOKENS" envDefault:"1000" yaml:"max_tokens" validate:"gt=0"`
	OverlapTokens int    `env:"CHUNKENIZER_OVERLAP_TOKENS" envDefault:"100" yaml:"overlap_tokens" validate:"gte=0"`
	Model         string `env:"CHUNKENIZER_MODEL" envDefault:"gpt-4" yaml:"model" validate:"required"`
	Concurrency   int    `env:"CHUNKENIZER_CONCURRENCY" envDefault:"4" yaml:"concurrency" validate:"gt=0"`
}

var validate = validator.New()

// Load builds the configuration from environment variables (with .env
// support), overlaid with the YAML file when one is given.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", file, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", chunker.ErrInvalidConfig, err)
	}
	return nil
}
