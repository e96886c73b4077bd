package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat/internal/cli"
	"github.com/aretw0/pdaboat/internal/presentation/solution"
	"github.com/aretw0/pdaboat/internal/presentation/tui"
)

var solveCmd = &cobra.Command{
	Use:   "solve <template> <input>",
	Short: "Print the complete solution of a run",
	Long: `Generates the whole trace at once and prints it as a Markdown table (rendered for the
terminal unless --raw), or as JSON with --json.`,
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

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		tpl, _ := app.Registry.Get(res.TemplateID)
		md := solution.Markdown(res, tpl.Info())

		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !cli.IsInteractive(os.Stdout) {
			_, err := fmt.Fprint(out, md)
			return err
		}

		style, _ := cmd.Flags().GetString("style")
		render, err := tui.NewRenderer(style)
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringP("mode", "m", "", "Processing mode: micro or batch (default from config)")
	solveCmd.Flags().Bool("json", false, "Print the result as JSON")
	solveCmd.Flags().Bool("raw", false, "Print Markdown without terminal rendering")
	solveCmd.Flags().String("style", "", "Glamour style (dark, light, notty, ...); auto by default")
}
