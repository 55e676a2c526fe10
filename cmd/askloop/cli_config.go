package main

import (
	"flag"
	"fmt"
	"strings"

	configpkg "github.com/minhyannv/askloop/pkg/config"
)

// parseCLIConfig loads env + flags into runtime config.
// The environment is expected to be populated (including .env) by the caller.
func parseCLIConfig(args []string, getenv func(string) string) (configpkg.Config, error) {
	defaults := configpkg.DefaultConfig()

	fs := flag.NewFlagSet("askloop", flag.ContinueOnError)
	seedFile := fs.String("seed", defaults.SeedFile, "File whose first line is the initial question")
	logsDir := fs.String("logs", defaults.LogsDir, "Directory that receives one timestamped folder per run")
	profile := fs.String("profile", "", "Optional YAML profile overriding system_prompt and delay bounds")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose request logging")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}

	cfg := defaults
	cfg.SeedFile = *seedFile
	cfg.LogsDir = *logsDir
	cfg.Verbose = *verbose
	cfg.ChatURL = getenv("API_URL")
	cfg.Model = getenv("MODEL")
	cfg.WebhookURL = getenv("DISCORD_WEBHOOK_URL")
	cfg.APIKey = getenv("API_KEY")
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = getenv("OPENAI_API_KEY")
	}

	if path := strings.TrimSpace(*profile); path != "" {
		p, err := configpkg.LoadProfile(path)
		if err != nil {
			return configpkg.Config{}, fmt.Errorf("load profile %s: %w", path, err)
		}
		cfg = p.Apply(cfg)
	}
	return configpkg.Normalize(cfg), nil
}
