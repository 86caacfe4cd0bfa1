// Package main is the entry point for the articles API server.
//
// main stays minimal: read configuration, build the logger, hand both to the
// server package, block until shutdown. All actual behaviour lives in
// internal/.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/articles-api/internal/config"
	"github.com/sakif/articles-api/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	// The fallback secret is fine for local development and nothing else:
	// anyone who reads the source can mint valid tokens against it.
	// Generate a real one with: JWT_SECRET=$(openssl rand -hex 32)
	if cfg.UsingInsecureSecret() {
		logger.Warn("JWT_SECRET not set - using the insecure development default")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
