package main

import (
	"errors"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file|document>",
	Short: "Evaluate a graph and print every node's value",
	Long: `Loads a graph document (a .json/.yaml file, or the name of a stored
document), evaluates it and prints a report of every node.
Printer nodes write their messages to stdout while the graph evaluates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		engine := cli.NewEngine(settings.cfg, settings.logger, backend, pictograph.WithPrinterOutput(cmd.OutOrStdout()))
		// Compute failures still leave a partially evaluated graph worth reporting.
		loadErr := cli.LoadGraph(cmd.Context(), engine, args[0])
		if loadErr != nil && !errors.Is(loadErr, domain.ErrCompute) {
			return loadErr
		}
		runner := cli.NewRunner(cmd.OutOrStdout(), headless)
		runner.Evaluated = true
		if err := runner.Run(engine); err != nil {
			return err
		}
		return loadErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("headless", false, "Print one plain line per node")
}
