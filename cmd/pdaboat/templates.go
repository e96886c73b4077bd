package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		infos := app.Registry.Infos()
		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEXAMPLES\tDESCRIPTION")
		for _, info := range infos {
			id := info.ID
			if id == app.Registry.DefaultID() {
				id += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, info.Name, strings.Join(info.Examples, ", "), info.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().Bool("json", false, "Print the catalogue as JSON")
}
