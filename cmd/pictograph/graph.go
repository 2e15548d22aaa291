package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/internal/presentation/graph"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file|document>",
	Short: "Export the graph visualization",
	Long:  `Evaluates the graph and outputs a Mermaid diagram (graph LR) of its nodes and links.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, _ := cmd.Flags().GetBool("values")

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		engine := cli.NewEngine(settings.cfg, settings.logger, backend)
		if err := cli.LoadGraph(cmd.Context(), engine, args[0]); err != nil && !errors.Is(err, domain.ErrCompute) {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(engine.Nodes(), graph.Options{
			ShowValues:   values,
			ShowValidity: values,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("values", true, "Show node values and validity")
}
