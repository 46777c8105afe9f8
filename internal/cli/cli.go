// Package cli implements the boxdeform command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxdeform/pkg/buildinfo"
	"github.com/matzehuels/boxdeform/pkg/config"
	"github.com/matzehuels/boxdeform/pkg/scene"
	"github.com/matzehuels/boxdeform/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "boxdeform"

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

	// configPath is the --config flag; empty selects the default location.
	configPath string
	stats      *sessionStats
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
		Use:          appName,
		Short:        "Boxdeform deforms stroke drawings with a temporary view-aligned cage",
		Long:         `Boxdeform builds a lattice cage around the selected strokes of a scene, lets you reshape it with the keyboard and bakes the result back into the drawing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.registerHooks()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boxdeform/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.cageCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// loadConfig reads the effective configuration.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newController creates a session controller over s using the effective
// configuration and a fresh registry.
func (c *CLI) newController(s *scene.Scene) (*session.Controller, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return session.NewController(s, session.NewRegistry(), cfg, c.Logger), nil
}
