// ABOUTME: Entry point for the paperlike drawing-core CLI
// ABOUTME: Dispatches demo, replay, import, and export subcommands

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glassa-work/paperlike/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: paperlike <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  demo                      Run a scripted editing session in memory")
		fmt.Println("  replay <bundle>           Load a bundle and verify undo/redo round trips")
		fmt.Println("  import <bundle> <db>      Import a bundle into a SQLite drawing store")
		fmt.Println("  export <db> <out>         Export a SQLite drawing store as a bundle")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := loadConfig()
	setupLogging(cfg)

	var err error
	switch os.Args[1] {
	case "demo":
		err = runDemo(ctx)
	case "replay":
		err = runReplay(ctx, os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "export":
		err = runExport(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads PAPERLIKE_CONFIG if set, otherwise defaults.
func loadConfig() *config.Config {
	path := os.Getenv("PAPERLIKE_CONFIG")
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
