package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration for the summarizer.
type Config struct {
	// Inference server
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"ollama" validate:"oneof=ollama openai"`
	Endpoint       string        `env:"LLM_ENDPOINT" envDefault:"http://localhost:11434" validate:"url"`
	Model          string        `env:"LLM_MODEL" envDefault:"llama3.2:latest" validate:"required"`
	OpenAIKey      string        `env:"OPENAI_API_KEY"` // optional; local OpenAI-compatible servers ignore it
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"150s"`

	// Input limits
	MaxFileSize     int64 `env:"MAX_FILE_SIZE" envDefault:"512000"` // 500KB
	MaxPromptTokens int   `env:"MAX_PROMPT_TOKENS" envDefault:"8000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// Run history store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"none" validate:"oneof=none postgres"`
	DBURL         string `env:"DB_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints. Called again after CLI flag overrides.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("invalid config: field %s failed %q", errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
