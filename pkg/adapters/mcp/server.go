package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/internal/presentation/graph"
	"github.com/aretw0/parley/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI names the resource holding the mermaid chart of the story.
const GraphURI = "parley://graph"

// ChooseArgs are the arguments of the choose tool.
type ChooseArgs struct {
	Index int `json:"index" jsonschema_description:"Position of the choice among all choices of the current node"`
}

// Server exposes a single dialogue session as an MCP Server.
type Server struct {
	mu   sync.Mutex
	play *session.Play

	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for rejected tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance over play.
func NewServer(play *session.Play, opts ...Option) *Server {
	s := &Server{
		play:      play,
		mcpServer: server.NewMCPServer("parley-mcp", parley.Version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for transports other than stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: view
	viewTool := mcp.NewTool("view",
		mcp.WithDescription("Show the current node of the dialogue and every choice, marking those whose condition does not hold."),
		mcp.WithOutputSchema[session.View](),
	)
	s.mcpServer.AddTool(viewTool, mcp.NewStructuredToolHandler(s.handleView))

	// TOOL: choose
	chooseTool := mcp.NewTool("choose",
		mcp.WithDescription("Take a choice of the current node by its index, as listed by view."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Choice index, starting at 0")),
		mcp.WithOutputSchema[session.View](),
	)
	s.mcpServer.AddTool(chooseTool, mcp.NewStructuredToolHandler(s.handleChoose))

	// TOOL: reset
	resetTool := mcp.NewTool("reset",
		mcp.WithDescription("Restart the dialogue at its start node. Values are kept."),
		mcp.WithOutputSchema[session.View](),
	)
	s.mcpServer.AddTool(resetTool, mcp.NewStructuredToolHandler(s.handleReset))
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play.View(), nil
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args ChooseArgs) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.play.Choose(args.Index)
	if err != nil {
		s.logger.Warn("MCP choose: rejected", "index", args.Index, "error", err)
		return session.View{}, fmt.Errorf("choose %d: %w", args.Index, err)
	}
	return view, nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play.Reset(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: parley://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Story Graph",
		mcp.WithResourceDescription("Mermaid flowchart of the story with the current position marked"),
		mcp.WithMIMEType("text/plain"),
	), s.handleGraph)
}

func (s *Server) handleGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.Lock()
	r := s.play.Runner
	chart := graph.GenerateMermaid(r.Graph(), r.Start(), graph.Labels[string]{Node: s.play.Label}, graph.OverlayOf(r))
	s.mu.Unlock()

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "text/plain",
			Text:     chart,
		},
	}, nil
}
