// Package main is the entry point for the Sweet Memories API server.
//
// The main package stays minimal. Its job is to:
// 1. Read configuration from the environment (and .env, if present)
// 2. Create the logger
// 3. Build and start the server
//
// Store selection, media setup and routing live in internal/server.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/sweet-memories/internal/config"
	"github.com/sakif/sweet-memories/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// The logger level comes from config, so config is loaded first and any
	// error is reported through a default logger.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// === 3. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
