package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// gridCommand creates the grid command for systematic sampling designs.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		output         string
		format         string
		dx, dy         float64
		interactive    bool
		keepUnfiltered bool
	)

	cmd := &cobra.Command{
		Use:   "grid [scenario.toml]",
		Short: "Generate a systematic grid sampling design",
		Long: `Generate a systematic grid sampling design.

The grid command reads a scenario file with a [grid] section, lays a
regular lattice over the combined survey area, optionally shifts it, and
filters the lattice into the regions. Points inside exclusion zones or
within the perimeter margins are dropped.

The lattice can be shifted before filtering either with --dx/--dy or
interactively with --interactive, where arrow keys move the grid and
enter commits the position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGrid(cmd.Context(), args[0], output, format, dx, dy, interactive, keepUnfiltered)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scenario>.points.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv (default), geojson")
	cmd.Flags().Float64Var(&dx, "dx", 0, "shift the grid east-west before filtering")
	cmd.Flags().Float64Var(&dy, "dy", 0, "shift the grid north-south before filtering")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "position the grid interactively")
	cmd.Flags().BoolVar(&keepUnfiltered, "keep-unfiltered", false, "print the raw lattice before filtering")

	return cmd
}

// runGrid generates, positions and finalizes the lattice, then writes
// output.
func (c *CLI) runGrid(ctx context.Context, input, output, format string, dx, dy float64, interactive, keepUnfiltered bool) error {
	sc, err := LoadScenario(input)
	if err != nil {
		return err
	}
	engine, err := c.newEngine(sc)
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}

	lattice, err := engine.GenerateGrid(sc.Grid)
	if err != nil {
		return fmt.Errorf("generate grid: %w", err)
	}
	loggerFromContext(ctx).Debug("generated lattice", "points", len(lattice), "rotation", sc.Grid.RotationDegrees)

	if dx != 0 || dy != 0 {
		if err := engine.TranslateGrid(dx, dy); err != nil {
			return fmt.Errorf("shift grid: %w", err)
		}
	}

	if interactive {
		committed, err := c.positionGrid(ctx, engine, sc)
		if err != nil {
			return fmt.Errorf("position grid: %w", err)
		}
		if !committed {
			printInfo("Grid positioning aborted, no output written")
			return nil
		}
	}

	if keepUnfiltered {
		unfiltered, err := engine.Lattice()
		if err != nil {
			return fmt.Errorf("read lattice: %w", err)
		}
		printInfo("Unfiltered lattice (%d points)", len(unfiltered))
		for _, p := range unfiltered {
			fmt.Printf("  %.3f, %.3f\n", p.X, p.Y)
		}
		printNewline()
	}

	result, err := engine.FinalizeGrid()
	if err != nil {
		return fmt.Errorf("finalize grid: %w", err)
	}
	if len(result.Points) == 0 {
		printWarning("no grid points fall inside the survey regions")
	}

	outputPath, err := writePoints(result.Points, input, output, format)
	if err != nil {
		return err
	}

	printSuccess("Grid design complete")
	printFile(outputPath)
	printRunStats(len(result.Points), len(sc.Regions), 0)
	printNewline()
	printNextStep("Random design", appName+" random "+input)

	return nil
}

// positionGrid runs the interactive positioning TUI. It reports whether
// the user committed the grid position.
func (c *CLI) positionGrid(ctx context.Context, engine gridPositioner, sc *Scenario) (bool, error) {
	model, err := newGridModel(engine, sc)
	if err != nil {
		return false, err
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GridModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Committed, nil
}
