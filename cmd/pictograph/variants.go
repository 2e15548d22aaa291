package main

import (
	"encoding/json"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/cli"
	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the node variants that can be instantiated",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		catalog := pictograph.New().Catalog()

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalog)
		}
		cli.Render(cmd.OutOrStdout(), cli.VariantsMarkdown(catalog))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
