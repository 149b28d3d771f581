package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotsample/plotsample/pkg/export"
	"github.com/plotsample/plotsample/pkg/sample"
)

// randomCommand creates the random command for generating random sampling
// designs.
func (c *CLI) randomCommand() *cobra.Command {
	var (
		output  string
		format  string
		samples int
		byArea  bool
	)

	cmd := &cobra.Command{
		Use:   "random [scenario.toml]",
		Short: "Generate a constrained random sampling design",
		Long: `Generate a constrained random sampling design.

The random command reads a scenario file describing the survey regions,
exclusion zones and distance constraints, draws candidate points by
rejection sampling until every region reaches its target, and writes the
accepted points to a CSV or GeoJSON file.

Regions that cannot reach their target within the attempt budget keep
their partial result; the shortfall is reported, not treated as a
failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRandom(cmd.Context(), args[0], output, format, samples, byArea)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scenario>.points.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv (default), geojson")
	cmd.Flags().IntVarP(&samples, "samples", "n", 10, "requested points per region (minimum with --by-area)")
	cmd.Flags().BoolVar(&byArea, "by-area", false, "scale per-region targets by relative area")

	return cmd
}

// runRandom loads the scenario, runs the engine, and writes output.
func (c *CLI) runRandom(ctx context.Context, input, output, format string, samples int, byArea bool) error {
	sc, err := LoadScenario(input)
	if err != nil {
		return err
	}
	engine, err := c.newEngine(sc)
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}

	adjust := byArea || sc.Constraints.AdjustByArea
	targets, err := engine.AllocateCounts(samples, adjust)
	if err != nil {
		return fmt.Errorf("allocate targets: %w", err)
	}
	logger := loggerFromContext(ctx)
	total := 0
	for _, t := range targets {
		total += t
	}
	logger.Debug("allocated targets", "regions", len(targets), "total", total)

	tracker := newProgress(logger)
	run, err := engine.StartRandomRun(ctx, targets)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Sampling 0/%d points...", total))
	spinner.Start()
	for u := range run.Progress() {
		spinner.SetMessage(fmt.Sprintf("Sampling %d/%d points...", u.Generated, u.Target))
	}

	result, err := run.Wait()
	if err != nil {
		spinner.StopWithError("Sampling failed")
		return fmt.Errorf("sampling run: %w", err)
	}
	spinner.Stop()
	tracker.done(fmt.Sprintf("Generated %d points", len(result.Points)))

	outputPath, err := writePoints(result.Points, input, output, format)
	if err != nil {
		return err
	}

	printSuccess("Random design complete")
	printFile(outputPath)
	printRunStats(len(result.Points), len(targets), result.Attempts)
	printShortfalls(result.Shortfalls)

	return nil
}

// writePoints writes a snapshot in the requested format, deriving the
// output path from the scenario file when none is given.
func writePoints(points []sample.SamplePoint, input, output, format string) (string, error) {
	ext := "csv"
	switch format {
	case "", "csv":
	case "geojson":
		ext = "geojson"
	default:
		return "", fmt.Errorf("unknown format %q (want csv or geojson)", format)
	}

	path := output
	if path == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		path = base + ".points." + ext
	}

	var err error
	if ext == "csv" {
		err = export.ExportCSV(points, path)
	} else {
		err = export.ExportGeoJSON(points, path)
	}
	if err != nil {
		return "", fmt.Errorf("write output %s: %w", path, err)
	}
	return path, nil
}
