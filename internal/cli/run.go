package cli

import (
	"io"
	"time"
)

// RunOptions contains the configuration shared by the commands.
type RunOptions struct {
	// StoryPath is a YAML story, or a directory holding one.
	// Empty selects the built-in cavern adventure.
	StoryPath string
	// Start overrides the start node by name.
	Start string
	// Plain disables the banner, markdown rendering and colours.
	Plain     bool
	Debug     bool
	LogFormat string

	In  io.Reader
	Out io.Writer
}

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	RunOptions
	Addr string
	// SessionTTL prunes sessions older than this; zero keeps them.
	SessionTTL time.Duration
	// MaxSessions caps live sessions; zero means no cap.
	MaxSessions int
}
