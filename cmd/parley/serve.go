package main

import (
	"context"

	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve story.yaml",
	Short: "Start the HTTP server",
	Long: `Serves the story over a JSON API. Every POST /sessions starts an
independent session with its own values. Prometheus metrics are exposed at /metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ServeOptions{RunOptions: runOptions(cmd, args)}
		opts.Addr, _ = cmd.Flags().GetString("addr")
		opts.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		opts.MaxSessions, _ = cmd.Flags().GetInt("max-sessions")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("session-ttl", 0, "Drop sessions older than this (0 keeps them)")
	serveCmd.Flags().Int("max-sessions", 0, "Maximum number of live sessions (0 means no limit)")
}
