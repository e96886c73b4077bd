package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat/internal/cli"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/runner"
)

// simulateArgs runs the <template> <input> pair shared by solve and graph.
func simulateArgs(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) (*domain.Result, error) {
	mode := app.Mode()
	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		var err error
		if mode, err = domain.ParseMode(raw); err != nil {
			return nil, err
		}
	}
	input, err := runner.SanitizeInput(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	res := app.NewSimulator().Simulate(ctx, args[0], input, mode)
	if res.Fallback {
		app.Logger.Warn("Unknown template, using default", "requested", args[0], "template", res.TemplateID)
	}
	return res, nil
}
