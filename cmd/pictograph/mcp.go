package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/cli"
	"github.com/aretw0/pictograph/pkg/adapters/mcp"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [file|document]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts a pictograph engine as an MCP Server.
This allows AI agents to build and evaluate graphs through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		backend, closeStore, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		engine := cli.NewEngine(settings.cfg, settings.logger, backend, pictograph.WithPrinterOutput(printerOutput(transport)))
		if len(args) == 1 {
			if err := cli.LoadGraph(cmd.Context(), engine, args[0]); err != nil && !errors.Is(err, domain.ErrCompute) {
				return err
			}
		}
		srv := mcp.NewServer(engine, settings.logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			settings.logger.Info("Starting pictograph MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			settings.logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
		}
	},
}

// printerOutput keeps printer messages off stdout when stdout carries JSON-RPC.
func printerOutput(transport string) io.Writer {
	if transport == "stdio" {
		return os.Stderr
	}
	return os.Stdout
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
