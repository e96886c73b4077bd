package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pdaboat"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pdaboat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pdaboat version %s\n", strings.TrimSpace(pdaboat.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
