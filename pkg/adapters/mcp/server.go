package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/presentation/graph"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const graphURI = "pictograph://graph"

// Engine defines what the MCP server needs from a graph engine.
type Engine interface {
	ports.Editor
	Catalog() []registry.Entry
	Load(doc *domain.Document) ([]domain.NodeID, error)
}

// Server wraps a pictograph Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("pictograph-mcp", strings.TrimSpace(pictograph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_variants",
		mcp.WithDescription("List the node variants that can be instantiated, with their inputs and parameters."),
	), s.handleListVariants)

	s.mcpServer.AddTool(mcp.NewTool("add_node",
		mcp.WithDescription("Create a node of the given variant and return its snapshot."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Variant name, e.g. NumberNode")),
		mcp.WithString("parameters", mcp.Description("JSON object of initial parameter values (optional)")),
	), s.handleAddNode)

	s.mcpServer.AddTool(mcp.NewTool("remove_node",
		mcp.WithDescription("Remove a node. Its inputs and outputs must be disconnected first."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node ID, e.g. n3")),
	), s.handleRemoveNode)

	s.mcpServer.AddTool(mcp.NewTool("connect",
		mcp.WithDescription("Connect the output of producer into an input terminal of consumer."),
		mcp.WithString("consumer", mcp.Required(), mcp.Description("Consumer node ID")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Input terminal key, e.g. arg1")),
		mcp.WithString("producer", mcp.Required(), mcp.Description("Producer node ID")),
	), s.handleConnect)

	s.mcpServer.AddTool(mcp.NewTool("disconnect",
		mcp.WithDescription("Clear an input terminal and invalidate the consumer."),
		mcp.WithString("consumer", mcp.Required(), mcp.Description("Consumer node ID")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Input terminal key")),
	), s.handleDisconnect)

	s.mcpServer.AddTool(mcp.NewTool("adjust_parameter",
		mcp.WithDescription("Set a node parameter and reprocess the node."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node ID")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Parameter name")),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON-encoded value, e.g. 2.5, \"text\" or [1,2]")),
	), s.handleAdjustParameter)

	s.mcpServer.AddTool(mcp.NewTool("process",
		mcp.WithDescription("Process a node if all of its inputs are valid."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node ID")),
	), s.handleProcess)

	s.mcpServer.AddTool(mcp.NewTool("inspect",
		mcp.WithDescription("Get the snapshot of one node, or of every node when node_id is omitted."),
		mcp.WithString("node_id", mcp.Description("Node ID (optional)")),
	), s.handleInspect)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the whole graph as a document."),
	), s.handleGetGraph)

	s.mcpServer.AddTool(mcp.NewTool("load_graph",
		mcp.WithDescription("Replace the graph with a document and evaluate it."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Graph document")),
		mcp.WithString("format", mcp.Description("json (default) or yaml")),
	), s.handleLoadGraph)

	s.mcpServer.AddTool(mcp.NewTool("mermaid",
		mcp.WithDescription("Render the graph as a Mermaid flowchart."),
	), s.handleMermaid)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Current Graph Document",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.engine.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// jsonResult encodes v as the text of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError reports engine failures to the model instead of failing the call.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Debug("MCP tool rejected", "tool", tool, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func nodeArg(request mcp.CallToolRequest, name string) (domain.NodeID, error) {
	raw, err := request.RequireString(name)
	if err != nil {
		return 0, err
	}
	return ParseNodeID(raw)
}

// ParseNodeID accepts both "3" and "n3".
func ParseNodeID(s string) (domain.NodeID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "n"), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: invalid node id %q", domain.ErrNodeNotFound, s)
	}
	return domain.NodeID(v), nil
}

func (s *Server) snapshot(tool string, id domain.NodeID) (*mcp.CallToolResult, error) {
	info, err := s.engine.Inspect(id)
	if err != nil {
		return s.toolError(tool, err), nil
	}
	return jsonResult(info)
}

func (s *Server) handleListVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Catalog())
}

func (s *Server) handleAddNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeName, err := request.RequireString("type")
	if err != nil {
		return s.toolError("add_node", err), nil
	}
	var params map[string]any
	if raw := request.GetString("parameters", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return s.toolError("add_node", fmt.Errorf("parameters: %w", err)), nil
		}
	}

	id, err := s.engine.AddNode(typeName)
	if err != nil {
		return s.toolError("add_node", err), nil
	}
	if err := document.ApplyParameters(s.engine, id, params); err != nil {
		_ = s.engine.RemoveNode(id)
		return s.toolError("add_node", err), nil
	}
	return s.snapshot("add_node", id)
}

func (s *Server) handleRemoveNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := nodeArg(request, "node_id")
	if err == nil {
		err = s.engine.RemoveNode(id)
	}
	if err != nil {
		return s.toolError("remove_node", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed %s", id)), nil
}

func (s *Server) handleConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	consumer, err := nodeArg(request, "consumer")
	if err != nil {
		return s.toolError("connect", err), nil
	}
	producer, err := nodeArg(request, "producer")
	if err != nil {
		return s.toolError("connect", err), nil
	}
	key, err := request.RequireString("key")
	if err == nil {
		err = s.engine.ConnectInput(consumer, key, producer)
	}
	if err != nil {
		return s.toolError("connect", err), nil
	}
	return s.snapshot("connect", consumer)
}

func (s *Server) handleDisconnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	consumer, err := nodeArg(request, "consumer")
	if err != nil {
		return s.toolError("disconnect", err), nil
	}
	key, err := request.RequireString("key")
	if err == nil {
		err = s.engine.DisconnectInput(consumer, key)
	}
	if err != nil {
		return s.toolError("disconnect", err), nil
	}
	return s.snapshot("disconnect", consumer)
}

func (s *Server) handleAdjustParameter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := nodeArg(request, "node_id")
	if err != nil {
		return s.toolError("adjust_parameter", err), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return s.toolError("adjust_parameter", err), nil
	}
	raw, err := request.RequireString("value")
	if err != nil {
		return s.toolError("adjust_parameter", err), nil
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Bare words are taken as strings.
		value = raw
	}
	if err := document.ApplyParameters(s.engine, id, map[string]any{name: value}); err != nil {
		return s.toolError("adjust_parameter", err), nil
	}
	return s.snapshot("adjust_parameter", id)
}

func (s *Server) handleProcess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := nodeArg(request, "node_id")
	if err == nil {
		err = s.engine.Process(id)
	}
	if err != nil {
		return s.toolError("process", err), nil
	}
	return s.snapshot("process", id)
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("node_id", "")
	if raw == "" {
		return jsonResult(s.engine.Nodes())
	}
	id, err := ParseNodeID(raw)
	if err != nil {
		return s.toolError("inspect", err), nil
	}
	return s.snapshot("inspect", id)
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Snapshot())
}

func (s *Server) handleLoadGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("document")
	if err != nil {
		return s.toolError("load_graph", err), nil
	}
	format, err := document.ParseFormat(request.GetString("format", string(document.FormatJSON)))
	if err != nil {
		return s.toolError("load_graph", err), nil
	}
	doc, err := document.Unmarshal([]byte(raw), format)
	if err != nil {
		return s.toolError("load_graph", err), nil
	}

	ids, err := s.engine.Load(doc)
	if ids == nil && err != nil {
		return s.toolError("load_graph", err), nil
	}
	if err != nil {
		// The graph was replaced; report the evaluation failures with it.
		s.logger.Warn("MCP load_graph: evaluation failed", "error", err)
	}
	return jsonResult(map[string]any{"nodes": ids, "evaluation_error": errString(err)})
}

func (s *Server) handleMermaid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.Nodes(), graph.Options{ShowValues: true, ShowValidity: true})), nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
