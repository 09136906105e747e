package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	httpAdapter "github.com/aretw0/parley/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/parley/pkg/adapters/mcp"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve exposes the story as HTTP sessions until ctx is done.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger, err := createLogger(opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	doc, err := loadDocument(opts.StoryPath)
	if err != nil {
		return err
	}
	chart, err := mermaidOf(opts.RunOptions, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	sessions := session.NewManager(
		session.FromDocument(doc, metrics.Hooks, debugHooks(opts.Debug, logger)),
		session.WithLogger(logger),
		session.WithLimit(opts.MaxSessions),
	)
	if opts.SessionTTL > 0 {
		go prune(ctx, sessions, opts.SessionTTL)
	}

	handler := httpAdapter.NewHandler(sessions,
		httpAdapter.WithGraph(chart),
		httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	)
	printSystemMessage(os.Stderr, "Serving %q on %s", doc.Title, opts.Addr)
	return httpAdapter.ListenAndServe(ctx, opts.Addr, handler, logger)
}

func prune(ctx context.Context, m *session.Manager, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Prune(now.Add(-ttl))
		}
	}
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	RunOptions
	// Transport is "stdio" or "sse".
	Transport string
	Addr      string
}

// ServeMCP exposes one dialogue over MCP until ctx is done.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger, err := createLogger(opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	l, err := createPlay(opts.RunOptions, logger, debugHooks(opts.Debug, logger))
	if err != nil {
		return err
	}
	srv := mcpAdapter.NewServer(l.play, mcpAdapter.WithLogger(logger))

	switch opts.Transport {
	case "stdio", "":
		return srv.ServeStdio()
	case "sse":
		return srv.ServeSSE(ctx, opts.Addr, baseURL(opts.Addr))
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
}

// baseURL turns a listen address into the URL clients reach it at.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
