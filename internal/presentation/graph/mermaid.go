package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	dgraph "github.com/aretw0/parley/pkg/graph"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []domain.NodeID
	CurrentNode  domain.NodeID
	Completed    bool
}

// OverlayOf captures the position of r.
func OverlayOf[D, C any](r *parley.Runner[D, C]) *GraphOverlay {
	o := &GraphOverlay{
		VisitedNodes: r.Visited(),
		Completed:    r.IsCompleted(),
	}
	if node, ok := r.Current(); ok {
		o.CurrentNode = node.ID()
	}
	return o
}

// Labels names nodes and choices in the chart.
type Labels[C any] struct {
	Node   func(domain.NodeID) string
	Choice func(C) string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - Start: ((Circle))
// - Nodes offering a terminal choice: ([Stadium])
// - Default: [Rectangle]
// Terminal choices lead to a shared end node. Guarded choices are dotted.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid[D, C any](g *dgraph.Graph[D, C], start domain.NodeID, labels Labels[C], overlay *GraphOverlay) string {
	if labels.Node == nil {
		labels.Node = func(id domain.NodeID) string { return domain.To(id).String() }
	}
	if labels.Choice == nil {
		labels.Choice = func(c C) string { return fmt.Sprint(c) }
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	terminals := make(map[domain.NodeID]bool)
	for _, id := range g.Terminals() {
		terminals[id] = true
	}

	hasEnd := false
	for _, node := range g.Nodes() {
		safeID := mermaidID(node.ID())

		opener, closer := "[", "]"
		switch {
		case node.ID() == start:
			opener, closer = "((", "))"
		case terminals[node.ID()]:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(labels.Node(node.ID())), closer))

		for _, c := range node.Choices() {
			to := "END"
			if id, ok := c.Target().Node(); ok {
				to = mermaidID(id)
			} else {
				hasEnd = true
			}

			_, guarded := c.Condition()
			text := escape(labels.Choice(c.Content()))
			if _, effect := c.Action(); effect && text != "" {
				text += " *"
			}

			var arrow string
			switch {
			case text == "" && guarded:
				arrow = "-.->"
			case text == "":
				arrow = "-->"
			case guarded:
				arrow = fmt.Sprintf("-. \"%s\" .->", text)
			default:
				arrow = fmt.Sprintf("-- \"%s\" -->", text)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, to))
		}
	}
	if hasEnd {
		sb.WriteString("    END(((\"end\")))\n")
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[domain.NodeID]bool)
		for _, id := range overlay.VisitedNodes {
			if !visitedSet[id] && g.Has(id) {
				visitedSet[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", mermaidID(id)))
			}
		}

		switch {
		case overlay.Completed && hasEnd:
			sb.WriteString("    class END current;\n")
		case !overlay.Completed && g.Has(overlay.CurrentNode):
			sb.WriteString(fmt.Sprintf("    class %s current;\n", mermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func mermaidID(id domain.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

// escape keeps labels inside their double quotes.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
