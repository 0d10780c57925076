package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/papermind/mcp-paper-tools/internal/config"
	"github.com/papermind/mcp-paper-tools/internal/descriptions"
	"github.com/papermind/mcp-paper-tools/internal/tools"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	dispatcher *tools.Dispatcher
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, dispatcher *tools.Dispatcher) (*Server, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		dispatcher: dispatcher,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers the full tool catalog with the MCP server. MCP
// clients always pass itemKey explicitly, so document tools are registered
// unconditionally; state-dependent gating (write access, selection size) is
// still enforced at dispatch time.
func (s *Server) registerTools() {
	state := tools.CatalogState{
		HasCurrentDocument: true,
		WriteEnabled:       s.config.WriteEnabled,
		SelectionCount:     2,
	}

	for _, def := range tools.BuildCatalog(state) {
		s.mcpServer.AddTool(buildTool(def), s.makeHandler(def.Name))
	}
}

// buildTool converts one catalog entry into an MCP tool declaration.
func buildTool(def tools.ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(toolDescription(def)),
	}

	required := make(map[string]bool, len(def.Required))
	for _, name := range def.Required {
		required[name] = true
	}

	for name, param := range def.Parameters {
		var propOpts []mcp.PropertyOption
		if required[name] {
			propOpts = append(propOpts, mcp.Required())
		}
		propOpts = append(propOpts, mcp.Description(param.Description))

		switch param.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(name, propOpts...))
		case "array":
			propOpts = append(propOpts, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(name, propOpts...))
		default:
			if len(param.Enum) > 0 {
				propOpts = append(propOpts, mcp.Enum(param.Enum...))
			}
			opts = append(opts, mcp.WithString(name, propOpts...))
		}
	}

	return mcp.NewTool(def.Name, opts...)
}

// toolDescription prefers the long-form description and falls back to the
// catalog's one-liner.
func toolDescription(def tools.ToolDefinition) string {
	if desc, ok := descriptions.ToolDescriptions[def.Name]; ok {
		return desc
	}
	return def.Description
}

// makeHandler adapts one named tool to the dispatcher. All dispatcher
// failures come back as "Error:" strings, which map onto MCP tool errors.
func (s *Server) makeHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: malformed arguments for %s: %v", name, err)), nil
		}

		result := s.dispatcher.Dispatch(ctx, tools.ToolCall{
			Name:      name,
			Arguments: string(payload),
		})

		if strings.HasPrefix(result, "Error:") {
			return mcp.NewToolResultError(result), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting paper tools MCP server in stdio mode")
		log.Printf("Library directory: %s", s.config.LibraryDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport only speaks stdio for now.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
