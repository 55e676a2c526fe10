package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile mirrors the optional YAML profile file.
//
//	system_prompt: You are a terse assistant.
//	min_delay_seconds: 30
//	max_delay_seconds: 60
type Profile struct {
	SystemPrompt    string `yaml:"system_prompt"`
	MinDelaySeconds *int   `yaml:"min_delay_seconds"`
	MaxDelaySeconds *int   `yaml:"max_delay_seconds"`
}

// LoadProfile reads and parses a YAML profile.
func LoadProfile(path string) (Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return parseProfile(content)
}

func parseProfile(content []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(content, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if p.MinDelaySeconds != nil && *p.MinDelaySeconds < 0 {
		return Profile{}, fmt.Errorf("min_delay_seconds must not be negative")
	}
	if p.MaxDelaySeconds != nil && *p.MaxDelaySeconds < 0 {
		return Profile{}, fmt.Errorf("max_delay_seconds must not be negative")
	}
	return p, nil
}

// Apply overlays the fields set in the profile onto cfg.
func (p Profile) Apply(cfg Config) Config {
	if prompt := strings.TrimSpace(p.SystemPrompt); prompt != "" {
		cfg.SystemPrompt = prompt
	}
	if p.MinDelaySeconds != nil {
		cfg.MinDelay = time.Duration(*p.MinDelaySeconds) * time.Second
	}
	if p.MaxDelaySeconds != nil {
		cfg.MaxDelay = time.Duration(*p.MaxDelaySeconds) * time.Second
	}
	return cfg
}
