// Package cli implements the matplotly command-line interface.
//
// This package provides commands for converting serialized matplotlib
// figures to plotly documents, publishing them to the plotly service, and
// previewing them locally. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Export a figure to a plotly document without uploading
//   - publish: Convert and upload, printing the shareable URL
//   - inspect: Browse the traces a figure converts to
//   - serve: Preview a figure locally over HTTP
//   - auth: Manage plotly credentials
//   - cache: Manage the export cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/buildinfo"
	"github.com/mpld3/matplotlylib/pkg/cache"
	"github.com/mpld3/matplotlylib/pkg/credentials"
	"github.com/mpld3/matplotlylib/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "matplotly"

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
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "matplotly",
		Short:        "Matplotly publishes matplotlib figures to plotly",
		Long:         `Matplotly converts serialized matplotlib figures into plotly documents and publishes them to the plotly service, turning static plots into shareable interactive graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	// MATPLOTLY_REDIS_URL selects a shared backend, mainly for CI runners.
	if url := os.Getenv("MATPLOTLY_REDIS_URL"); url != "" {
		return cache.NewRedisCache(context.Background(), url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newCredentialsStore opens the default credentials store.
func newCredentialsStore() (*credentials.Store, error) {
	return credentials.NewStore("")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/matplotly/).
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
