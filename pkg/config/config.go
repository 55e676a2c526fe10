package config

import (
	"strings"
	"time"
)

// DefaultSystemPrompt is sent as the system message of every chat request.
const DefaultSystemPrompt = "You are a helpful, respectful, and honest assistant. Always answer accurately, while being safe."

// Config holds all runtime configuration for the question loop.
type Config struct {
	ChatURL    string
	Model      string
	APIKey     string
	WebhookURL string

	SeedFile     string
	LogsDir      string
	SystemPrompt string

	MinDelay time.Duration
	MaxDelay time.Duration
	Verbose  bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		SeedFile:     "questions.txt",
		LogsDir:      "logs",
		SystemPrompt: DefaultSystemPrompt,
		MinDelay:     30 * time.Second,
		MaxDelay:     60 * time.Second,
	}
}

// Normalize sanitizes configuration values and applies defaults.
// Missing endpoint URLs are left empty; the requests fail when sent.
func Normalize(cfg Config) Config {
	cfg.ChatURL = strings.TrimSpace(cfg.ChatURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.WebhookURL = strings.TrimSpace(cfg.WebhookURL)
	cfg.SeedFile = strings.TrimSpace(cfg.SeedFile)
	cfg.LogsDir = strings.TrimSpace(cfg.LogsDir)

	defaults := DefaultConfig()
	if cfg.SeedFile == "" {
		cfg.SeedFile = defaults.SeedFile
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = defaults.LogsDir
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = defaults.SystemPrompt
	}

	if cfg.MinDelay < 0 {
		cfg.MinDelay = 0
	}
	if cfg.MaxDelay < 0 {
		cfg.MaxDelay = 0
	}
	if cfg.MinDelay > cfg.MaxDelay {
		cfg.MinDelay, cfg.MaxDelay = cfg.MaxDelay, cfg.MinDelay
	}
	return cfg
}
