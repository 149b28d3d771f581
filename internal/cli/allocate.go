package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plotsample/plotsample/pkg/sample"
)

// allocateCommand creates the allocate command for previewing per-region
// targets.
func (c *CLI) allocateCommand() *cobra.Command {
	var (
		samples int
		byArea  bool
	)

	cmd := &cobra.Command{
		Use:   "allocate [scenario.toml]",
		Short: "Preview per-region sample targets",
		Long: `Preview per-region sample targets without running a design.

Uniform allocation requests the same count in every region. With
--by-area (or adjust_by_area in the scenario) each region's target scales
with its area relative to the smallest region, never dropping below the
base request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAllocate(args[0], samples, byArea)
		},
	}

	cmd.Flags().IntVarP(&samples, "samples", "n", 10, "requested points per region (minimum with --by-area)")
	cmd.Flags().BoolVar(&byArea, "by-area", false, "scale per-region targets by relative area")

	return cmd
}

// runAllocate prints the allocation table for a scenario.
func (c *CLI) runAllocate(input string, samples int, byArea bool) error {
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

	mode := "uniform"
	if adjust {
		mode = "area-proportional"
	}
	printInfo("Allocation (%s)", mode)
	total := 0
	for _, r := range sortedRegions(sc) {
		area := r.Geometry.Area()
		target := targets[r.Key]
		total += target
		printKeyValue(
			fmt.Sprintf("region %s", r.Key),
			fmt.Sprintf("%d points (%s, area %.1f)", target, r.Role, area),
		)
	}
	printNewline()
	printKeyValue("total", fmt.Sprintf("%d points", total))

	return nil
}

// sortedRegions returns the scenario's regions ordered by key for stable
// output.
func sortedRegions(sc *Scenario) []sample.Region {
	out := append([]sample.Region(nil), sc.Regions...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
