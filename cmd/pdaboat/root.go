package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "pdaboat",
	Short: "pdaboat steps through pushdown automata one symbol at a time",
	Long: `pdaboat simulates deterministic pushdown automata from a fixed catalogue of templates.
Every run produces an annotated trace of pushes, pops and state changes that can be played
in the terminal, rendered as a solution, drawn as a graph or served over HTTP and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "pdaboat.yaml", "Configuration file (missing file means defaults)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}

// setup builds the application from the persistent flags. Callers must Close it.
func setup(cmd *cobra.Command) (*cli.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")
	return cli.Setup(cli.Options{
		ConfigPath: configPath,
		Debug:      debug,
		LogFile:    logFile,
	})
}
