// Package cli implements the sparqlkit command-line interface.
//
// This package provides commands for running queries and updates against
// SPARQL endpoints, listing configured endpoints, and serving the
// in-memory mock endpoint for local development. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - query: Run a query and render its result (table, json, csv, graph)
//   - update: Run an update operation
//   - endpoints: List endpoints from the configuration file
//   - serve-mock: Serve a miniature in-memory SPARQL endpoint
//
// # Configuration
//
// Named endpoints live in a TOML file at ~/.config/sparqlkit/endpoints.toml
// (honoring XDG_CONFIG_HOME). Commands select an endpoint with --endpoint,
// a raw URL with --url, the file's default entry, or an interactive picker.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// client's transport diagnostics (retries) surface at debug level.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphbound/sparqlkit/pkg/buildinfo"
	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sparqlkit"

	// configFileName is the endpoints file inside the config directory.
	configFileName = "endpoints.toml"
)

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
		Use:          "sparqlkit",
		Short:        "Sparqlkit talks to SPARQL 1.1 Protocol endpoints",
		Long:         `Sparqlkit is a CLI client for SPARQL 1.1 Protocol endpoints: it runs queries and updates, renders results, and ships a mock endpoint for local development.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.endpointsCommand())
	root.AddCommand(c.serveMockCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds a sparql client from cfg, routing the client's sparse
// transport diagnostics to the debug log.
func (c *CLI) newClient(cfg sparql.Config) (*sparql.Client, error) {
	cfg.Logger = func(format string, args ...any) {
		c.Logger.Debugf(format, args...)
	}
	return sparql.New(cfg)
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the endpoints file path using the XDG standard
// (~/.config/sparqlkit/endpoints.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFileName), nil
}

// isTerminal reports whether f is attached to a terminal, gating the
// interactive endpoint picker.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
