package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/internal/presentation/graph"
	"github.com/aretw0/pdaboat/internal/presentation/solution"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/ports"
	"github.com/aretw0/pdaboat/pkg/runner"
)

// TemplatesURI is the resource listing every template.
const TemplatesURI = "pdaboat://templates"

// SimulateArgs are the arguments of the simulate, render_solution and render_graph tools.
type SimulateArgs struct {
	Template string `json:"template"`
	Input    string `json:"input"`
	Mode     string `json:"mode,omitempty"`
}

// Server wraps the simulator and exposes it as an MCP Server.
type Server struct {
	sim       ports.Simulator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sim ports.Simulator, opts ...Option) *Server {
	s := &Server{
		sim:       sim,
		mcpServer: server.NewMCPServer("pdaboat-mcp", strings.TrimSpace(pdaboat.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func runArgs(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append([]mcp.ToolOption{
		mcp.WithString("template", mcp.Required(), mcp.Description("Template id (see list_templates). Unknown ids fall back to anbn.")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input word; every character is one symbol. May be empty.")),
		mcp.WithString("mode", mcp.Enum(string(domain.ModeMicro), string(domain.ModeBatch)), mcp.Description("Step labelling (default micro)")),
	}, opts...)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the pushdown automaton templates with their example inputs."),
	), s.handleListTemplates)

	s.mcpServer.AddTool(mcp.NewTool("simulate", runArgs(
		mcp.WithDescription("Run an input through a template and return the full annotated trace and verdict."),
		mcp.WithOutputSchema[domain.Result](),
	)...), mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("render_solution", runArgs(
		mcp.WithDescription("Explain a run step by step as a Markdown table."),
	)...), s.handleRenderSolution)

	s.mcpServer.AddTool(mcp.NewTool("render_graph", runArgs(
		mcp.WithDescription("Draw the states visited by a run as a Mermaid flowchart."),
	)...), s.handleRenderGraph)
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.sim.Templates())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode templates: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args SimulateArgs) (*domain.Result, error) {
	return s.simulate(ctx, args)
}

func (s *Server) handleRenderSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.simulate(ctx, argsFrom(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tpl, _ := s.sim.Template(res.TemplateID)
	return mcp.NewToolResultText(solution.Markdown(res, tpl.Info())), nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.simulate(ctx, argsFrom(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(res.Trace, nil)), nil
}

func argsFrom(request mcp.CallToolRequest) SimulateArgs {
	return SimulateArgs{
		Template: request.GetString("template", ""),
		Input:    request.GetString("input", ""),
		Mode:     request.GetString("mode", ""),
	}
}

func (s *Server) simulate(ctx context.Context, args SimulateArgs) (*domain.Result, error) {
	mode, err := domain.ParseMode(args.Mode)
	if err != nil {
		return nil, err
	}
	clean, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP Simulate: Input rejected", "err", err, "size", len(args.Input))
		return nil, fmt.Errorf("input rejected: %w", err)
	}
	if args.Template == "" {
		return nil, errors.New("template is required")
	}
	return s.sim.Simulate(ctx, args.Template, clean, mode), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TemplatesURI, "Template Catalogue",
		mcp.WithResourceDescription("Every pushdown automaton template with description and examples"),
		mcp.WithMIMEType("application/json"),
	), s.readTemplates)
}

func (s *Server) readTemplates(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.sim.Templates())
	if err != nil {
		return nil, fmt.Errorf("failed to encode templates: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TemplatesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
