package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/pictograph/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves a live graph over a JSON API, with Server-Sent Events on /events
and Prometheus metrics on /metrics. The startup graph is opened from the
document store when it has been saved before.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := settings.cfg
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("graph") {
			cfg.HTTP.Graph, _ = cmd.Flags().GetString("graph")
		}

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := cli.NewService(cfg, settings.logger, backend)
		if err := svc.Restore(ctx, cfg.HTTP.Graph, settings.logger); err != nil {
			return err
		}
		return cli.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port), svc.Handler, settings.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("graph", "", "Stored document to open at startup")
}

