package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pictograph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pictograph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pictograph version %s\n", strings.TrimSpace(pictograph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
