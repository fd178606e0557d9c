package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nDmitry/rssproxy/internal/api/rest"
	"github.com/nDmitry/rssproxy/internal/app"
	"github.com/nDmitry/rssproxy/internal/config"
	"github.com/nDmitry/rssproxy/internal/feed"
	"github.com/nDmitry/rssproxy/internal/parser"
)

func main() {
	logger := app.Logger()
	slog.SetDefault(logger)

	cfg, err := config.Read(".env")

	if err != nil {
		logger.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received first shutdown signal, starting graceful shutdown...")
		cancel()

		// If we receive a second signal, exit immediately
		<-sigChan
		logger.Info("Received second shutdown signal, exiting immediately...")
		os.Exit(1)
	}()

	fetcher := feed.NewFetcher(cfg.FetchTimeout, cfg.UserAgent, cfg.MaxBodyBytes)

	logger.Info("Configuration loaded",
		"port", cfg.Port,
		"fetch_timeout", cfg.FetchTimeout.String(),
		"max_body_bytes", cfg.MaxBodyBytes,
	)

	// Initialize and run the HTTP server
	server := rest.NewServer(fetcher, parser.New(), cfg.Port)

	if err := server.Run(ctx); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully")
}
