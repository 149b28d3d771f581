// Package cli implements the plotsample command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plotsample/plotsample/pkg/buildinfo"
	"github.com/plotsample/plotsample/pkg/sample"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "plotsample"
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
		Use:          "plotsample",
		Short:        "Plotsample lays out sampling points over survey areas",
		Long:         `Plotsample generates constrained sampling designs over polygonal survey areas: random point layouts with distance constraints and exclusion zones, and rotatable systematic grids.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.allocateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// newEngine builds a configured engine from a loaded scenario.
func (c *CLI) newEngine(sc *Scenario) (*sample.Engine, error) {
	engine, err := sample.NewEngine(sc.Options)
	if err != nil {
		return nil, err
	}
	if err := engine.Configure(sc.Regions, sc.Exclusions, sc.Constraints); err != nil {
		return nil, err
	}
	return engine, nil
}
