package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/internal/config"
	"github.com/spf13/cobra"
)

// settings are resolved once per invocation, before any subcommand runs.
var settings struct {
	cfg    config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "pictograph",
	Short: "Pictograph evaluates dataflow graphs of typed nodes",
	Long: `Pictograph builds graphs of computation nodes wired output to input,
keeps every cached value in sync with its inputs, and serves the graph over
HTTP or MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Settings file (default ./"+config.DefaultFile+" when present)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.String("store", "", "Document store: memory, file, loam or redis")
	flags.String("dir", "", "Directory of the file or loam store")
	flags.String("redis", "", "Address of the redis store")
}

// loadSettings reads the settings file, then lets flags override it.
func loadSettings(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("store") {
		cfg.Store.Backend, _ = flags.GetString("store")
	}
	if flags.Changed("dir") {
		cfg.Store.Dir, _ = flags.GetString("dir")
		if !flags.Changed("store") {
			cfg.Store.Backend = config.StoreFile
		}
	}
	if flags.Changed("redis") {
		cfg.Store.Redis.Addr, _ = flags.GetString("redis")
		if !flags.Changed("store") {
			cfg.Store.Backend = config.StoreRedis
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	settings.cfg = cfg
	settings.logger = logger
	return nil
}

// openBackend opens the configured document store.
// The returned func closes the store.
func openBackend(cmd *cobra.Command) (*cli.Backend, func(), error) {
	backend, err := cli.OpenStore(cmd.Context(), settings.cfg)
	if err != nil {
		return nil, nil, err
	}
	return backend, func() {
		if err := backend.Close(); err != nil {
			settings.logger.Warn("failed to close store", "error", err)
		}
	}, nil
}
