package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored graph documents",
	Long:  `List, show, import and remove documents in the configured store.`,
}

var docsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := backend.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No stored documents found.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, "- "+name)
		}
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := document.ParseFormat(formatName)
		if err != nil {
			return err
		}

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		doc, err := backend.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := document.Marshal(doc, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var docsImportCmd = &cobra.Command{
	Use:   "import <file> [name]",
	Short: "Validate a document file and store it",
	Long:  `The document is rebuilt and evaluated before it is stored. The name defaults to the file name without extension.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if len(args) == 2 {
			name = args[1]
		}

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		engine := cli.NewEngine(settings.cfg, settings.logger, backend)
		if err := cli.LoadGraph(cmd.Context(), engine, args[0]); err != nil {
			return err
		}
		docs := backend.Library(settings.logger)
		if err := docs.Save(cmd.Context(), name, engine.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored '%s' (%d nodes)\n", name, engine.Len())
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove one or more stored documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		docs := backend.Library(settings.logger)
		failed := 0
		for _, name := range args {
			if err := docs.Delete(cmd.Context(), name); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", name, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'\n", name)
		}
		if failed > 0 {
			return fmt.Errorf("%d document(s) could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsLsCmd, docsShowCmd, docsImportCmd, docsRmCmd)
	docsShowCmd.Flags().String("format", "yaml", "Output format: json or yaml")
}
