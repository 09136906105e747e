// Package console drives a dialogue over a line-based text interface.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
)

// EndOfStory is shown for terminal choices without text.
const EndOfStory = "END OF STORY"

// ContentRenderer transforms node content before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Console reads choice numbers and commands from a reader and prints the dialogue to a writer.
type Console struct {
	reader      *bufio.Reader
	writer      io.Writer
	renderer    ContentRenderer
	unavailable func(string) string
	logger      *slog.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) Option {
	return func(c *Console) {
		c.renderer = renderer
	}
}

// WithUnavailableStyle styles the marker of choices whose condition does not hold.
func WithUnavailableStyle(style func(string) string) Option {
	return func(c *Console) {
		c.unavailable = style
	}
}

// WithLogger sets the logger for renderer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// New creates a console over r and w, defaulting to Stdin and Stdout.
func New(r io.Reader, w io.Writer, opts ...Option) *Console {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	c := &Console{
		reader:      bufio.NewReader(r),
		writer:      w,
		unavailable: func(s string) string { return s },
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run plays the dialogue until it completes, the user quits or input ends.
// It reports whether the dialogue was completed.
//
// Besides choice numbers the console understands "reset", "exit" and "quit".
func (c *Console) Run(ctx context.Context, r *parley.Runner[string, string]) (bool, error) {
	entered := true
	for !r.IsCompleted() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		node, _ := r.Current()
		if entered {
			c.show(node.Content())
			entered = false
		}
		choices := r.AllChoices()
		c.list(r, choices)

		fmt.Fprint(c.writer, "> ")
		line, err := c.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("input error: %w", err)
		}
		clean, err := Sanitize(line)
		if err != nil {
			c.logger.Warn("input rejected", "err", err, "size", len(line))
			fmt.Fprintln(c.writer, "Input rejected.")
			continue
		}
		input := strings.ToLower(strings.TrimSpace(clean))

		switch input {
		case "exit", "quit":
			fmt.Fprintln(c.writer, "Bye!")
			return false, nil
		case "reset":
			r.Reset()
			entered = true
			continue
		}

		n, convErr := strconv.Atoi(input)
		if convErr != nil || n < 1 || n > len(choices) {
			fmt.Fprintf(c.writer, "Please pick a number between 1 and %d.\n", len(choices))
			continue
		}
		choice := choices[n-1]
		if !r.IsAvailable(choice) {
			fmt.Fprintln(c.writer, "That choice is not available.")
			continue
		}
		if _, err := r.Choose(choice); err != nil {
			fmt.Fprintf(c.writer, "Cannot take that choice: %v\n", err)
			continue
		}
		fmt.Fprintln(c.writer)
		entered = true
	}
	return true, nil
}

func (c *Console) show(content string) {
	out := content
	if c.renderer != nil {
		rendered, err := c.renderer(content)
		if err != nil {
			c.logger.Warn("render failed, printing raw content", "err", err)
		} else {
			out = rendered
		}
	}
	fmt.Fprintln(c.writer, strings.TrimSpace(out))
}

func (c *Console) list(r *parley.Runner[string, string], choices []*domain.Choice[string]) {
	for i, ch := range choices {
		text := ch.Content()
		if strings.TrimSpace(text) == "" {
			text = EndOfStory
		}
		if r.IsAvailable(ch) {
			fmt.Fprintf(c.writer, "%d. %s\n", i+1, text)
		} else {
			fmt.Fprintf(c.writer, "%d. %s %s\n", i+1, text, c.unavailable("[NOT AVAILABLE]"))
		}
	}
}
