// Taskweaved is the taskweave daemon: it turns free-text notes into
// structured tasks via an LLM provider (with a deterministic rule-based
// fallback), stores them in SQLite, and serves a greedy weekly plan
// over HTTP.
//
// Configuration is loaded from an optional YAML file and environment
// variables. See internal/config for details.
//
// Usage:
//
//	# Start the daemon with defaults
//	taskweaved
//
//	# Configure via environment
//	SERVER_PORT=8484 ANTHROPIC_API_KEY=... taskweaved
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/auth"
	"github.com/fyrsmithlabs/taskweave/internal/config"
	"github.com/fyrsmithlabs/taskweave/internal/extraction"
	httpserver "github.com/fyrsmithlabs/taskweave/internal/http"
	"github.com/fyrsmithlabs/taskweave/internal/logging"
	"github.com/fyrsmithlabs/taskweave/internal/storage"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  taskweaved           Start the taskweave daemon\n")
			fmt.Fprintf(os.Stderr, "  taskweaved version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("taskweaved by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the taskweave daemon and blocks until the context is
// cancelled. Returns http.ErrServerClosed on graceful shutdown.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info("Starting taskweaved",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("db_path", cfg.DB.Path),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	store := storage.NewStore(cfg.DB.Path)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	extractor, err := extraction.NewService(cfg.ExtractionSettings(), logger.Named("extraction"))
	if err != nil {
		return fmt.Errorf("failed to initialize extraction: %w", err)
	}

	status := extractor.Status()
	logger.Info("Extraction ready",
		zap.String("provider", string(status.Provider)),
		zap.Bool("anthropic_configured", status.HasAnthropicKey),
		zap.Bool("openai_configured", status.HasOpenAIKey))

	sessions := auth.New(cfg.Auth.Secret, cfg.Auth.Password)

	server, err := httpserver.NewServer(store, extractor, sessions, logger.Named("http"), &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return <-errCh
	}
}
