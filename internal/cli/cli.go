// Package cli implements the kaleido command-line interface.
//
// This package provides commands for drawing interactively in the terminal,
// exporting drawings to SVG/PNG/PDF/JSON, managing the saved-drawing
// gallery, serving a drawing to live viewers, and inspecting the undo
// history. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Open the interactive drawing surface
//   - export: Render a saved drawing to SVG, PNG, PDF, or JSON
//   - gallery: List, show, and delete saved drawings
//   - serve: Share a drawing over HTTP and websocket
//   - timeline: Debug tool visualizing the undo history as a graph
//   - cache: Manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kaleidodraw/kaleido/pkg/buildinfo"
	"github.com/kaleidodraw/kaleido/pkg/cache"
	"github.com/kaleidodraw/kaleido/pkg/config"
	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "kaleido"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string // --config override; empty means the default location
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kaleido",
		Short:        "Kaleido is a symmetric freehand drawing tool",
		Long:         `Kaleido is a terminal drawing tool that replicates every stroke with N-fold rotational symmetry around a configurable center, with bounded undo/redo history, a saved-drawing gallery, and SVG/PNG/PDF export.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/kaleido/config.toml)")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.timelineCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore builds the drawing store selected by the configuration.
// Remote backends verify their connection before the store is returned, so
// a broken backend fails here rather than mid-command.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s = store.NewMemoryStore()
	case config.BackendFile, "":
		s, err = store.NewFileStore(cfg.Store.Path)
	case config.BackendRedis:
		s, err = store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
	case config.BackendMongo:
		s, err = store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.MongoDatabase,
		})
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidBackend,
			"unknown store backend %q (must be file, memory, redis, or mongo)", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store.Instrumented(s, cfg.Store.Backend), nil
}

// newCache builds the artifact cache, or a null cache when disabled.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kaleido/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
