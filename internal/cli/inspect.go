package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/internal/presentation/graph"
)

// Validate compiles the story at path and prints a report to w.
// Nodes no path from the start reaches are reported but do not fail validation.
func Validate(path string, w io.Writer) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}
	s, err := doc.Compile()
	if err != nil {
		return err
	}

	for _, id := range s.Unreachable() {
		fmt.Fprintf(w, "warning: node %q is unreachable from %q\n", id, s.StartID())
	}
	fmt.Fprintf(w, "%s: %d nodes, start %q\n", path, s.Dialogue().Graph().Len(), s.StartID())
	return nil
}

// Graph writes the mermaid chart of the dialogue selected by opts.
func Graph(opts RunOptions, w io.Writer) error {
	chart, err := mermaidOf(opts, logging.NewNop())
	if err != nil {
		return err
	}
	fmt.Fprint(w, chart)
	return nil
}

// mermaidOf charts the dialogue selected by opts without an overlay.
func mermaidOf(opts RunOptions, logger *slog.Logger) (string, error) {
	l, err := createPlay(opts, logger)
	if err != nil {
		return "", err
	}
	r := l.play.Runner
	return graph.GenerateMermaid(r.Graph(), r.Start(), graph.Labels[string]{Node: l.play.Label}, nil), nil
}
