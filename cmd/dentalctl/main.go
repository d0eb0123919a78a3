package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zatekoja/dentaldesk/internal/cli"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return cli.ExitFailure
	}

	// Retries and token warnings go to stderr; keep them quiet unless asked
	level := cfg.Log.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-cli", cfg.Log.Env, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := cli.Bootstrap(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return cli.ExitFailure
	}
	defer cleanup()

	err = app.Run(ctx, os.Args[1:])
	cli.Report(os.Stderr, err)
	return cli.ExitCode(err)
}
