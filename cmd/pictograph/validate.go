package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/internal/validator"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|document>...",
	Short: "Check graph documents for consistency",
	Long: `Lints each document, then rebuilds the graph and evaluates it. Unknown
variants, parameter values of the wrong kind, bad connections, cycles and
compute failures are reported. Unconnected inputs are printed as warnings.
Documents are checked concurrently; the report keeps argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		reports := make([]string, len(args))
		failures := make([]error, len(args))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(runtime.NumCPU())
		for i, source := range args {
			g.Go(func() error {
				reports[i], failures[i] = validateSource(ctx, backend, source)
				return nil
			})
		}
		_ = g.Wait()

		out := cmd.OutOrStdout()
		var failed []string
		for i, source := range args {
			if len(args) > 1 {
				fmt.Fprintf(out, "== %s\n", source)
			}
			fmt.Fprint(out, reports[i])
			if failures[i] != nil {
				if len(args) == 1 {
					return fmt.Errorf("validation failed: %w", failures[i])
				}
				fmt.Fprintf(out, "❌ %v\n", failures[i])
				failed = append(failed, source)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("validation failed for %d of %d documents: %s", len(failed), len(args), strings.Join(failed, ", "))
		}
		return nil
	},
}

// validateSource returns the printable report for one document.
func validateSource(ctx context.Context, backend *cli.Backend, source string) (string, error) {
	var sb strings.Builder
	doc, err := cli.FetchDocument(ctx, backend.Store, source)
	if err != nil {
		return "", err
	}

	// Printers are evaluated but their messages are not part of the report.
	engine := cli.NewEngine(settings.cfg, settings.logger.With("document", source), backend,
		pictograph.WithPrinterOutput(io.Discard))
	report := validator.ValidateDocument(doc, engine.Catalog())
	for _, w := range report.Warnings {
		fmt.Fprintf(&sb, "⚠️  %s\n", w)
	}
	if err := report.Err(); err != nil {
		return sb.String(), err
	}

	if _, err := engine.Load(doc); err != nil {
		return sb.String(), err
	}
	fmt.Fprintf(&sb, "Graph is valid! ✅ (%d nodes)\n", engine.Len())
	return sb.String(), nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
