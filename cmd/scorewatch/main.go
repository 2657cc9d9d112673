package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/statiq/gridiron-sync/internal/app"
	"github.com/statiq/gridiron-sync/internal/config"
	"github.com/statiq/gridiron-sync/internal/logging"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_APP_RUN") == "1" {
		return
	}

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "gridiron-sync",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		os.Exit(1)
	}
	a.Run(ctx)
}
