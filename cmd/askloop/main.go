// Package main runs the question loop from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/minhyannv/askloop/pkg/chat"
	loggerpkg "github.com/minhyannv/askloop/pkg/logger"
	"github.com/minhyannv/askloop/pkg/relay"
	"github.com/minhyannv/askloop/pkg/webhook"
)

// main is the program entry point.
func main() {
	_ = godotenv.Load()

	config, err := parseCLIConfig(os.Args[1:], os.Getenv)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appLogger := loggerpkg.NewWriterLogger(os.Stderr, config.Verbose)
	loggerpkg.Debugf(appLogger, "config: chat_url=%q model=%q seed=%q logs=%q delay=%s..%s",
		config.ChatURL, config.Model, config.SeedFile, config.LogsDir, config.MinDelay, config.MaxDelay)

	asker := chat.New(chat.Options{
		Endpoint:     config.ChatURL,
		Model:        config.Model,
		APIKey:       config.APIKey,
		SystemPrompt: config.SystemPrompt,
		Logger:       appLogger,
	})
	notifier := webhook.New(config.WebhookURL, webhook.WithLogger(appLogger))

	loop, err := relay.New(config, asker, notifier, relay.WithLogger(appLogger))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := loop.Run(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
	appLogger.Info("loop finished", loggerpkg.Fields{
		"state":      res.State.String(),
		"iterations": res.Iterations,
		"run_dir":    res.RunDir,
	})
}
