package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plotsample/plotsample/internal/server"
	"github.com/plotsample/plotsample/pkg/sample"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [scenario.toml]",
		Short: "Serve the sampling engine over HTTP",
		Long: `Serve the sampling engine over HTTP.

The server loads the scenario once at startup and exposes the same
workflow as the CLI: POST /runs/random and /runs/grid execute designs,
GET /points exports the snapshot, POST /points and DELETE /points/nearest
edit it, POST /reset starts over with the same scenario.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe loads the scenario and blocks serving until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, input, addr string) error {
	sc, err := LoadScenario(input)
	if err != nil {
		return err
	}
	engine, err := sample.NewEngine(sc.Options)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	srv, err := server.New(engine, server.Config{
		Regions:     sc.Regions,
		Exclusions:  sc.Exclusions,
		Constraints: sc.Constraints,
		Grid:        sc.Grid,
	}, c.Logger)
	if err != nil {
		return fmt.Errorf("configure server: %w", err)
	}

	printInfo("Serving %s on %s", input, addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
