package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <template> <input>",
	Short: "Export the states visited by a run as a Mermaid diagram",
	Long: `Simulates input and outputs a Mermaid flowchart (graph LR) of the state transitions taken.
With --cursor, the states visited after that many steps are highlighted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := simulateArgs(cmd.Context(), cmd, app, args)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("cursor") {
			cursor, _ := cmd.Flags().GetInt("cursor")
			overlay = graph.OverlayAt(res.Trace, cursor)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(res.Trace, overlay))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("mode", "m", "", "Processing mode: micro or batch (default from config)")
	graphCmd.Flags().Int("cursor", 0, "Highlight playback after this many steps")
}
