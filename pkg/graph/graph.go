// Package graph builds the immutable, validated index of a dialogue.
//
// A Graph is closed: every non-terminal choice points at a node of the same
// graph. All topology mistakes surface in Build, so traversal never meets a
// missing node.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Graph is an immutable mapping from NodeID to Node.
// It is safe to share between any number of runners.
type Graph[D, C any] struct {
	nodes map[domain.NodeID]*domain.Node[D, C]
	order []domain.NodeID
}

// DuplicateNodeError reports two input nodes with the same id.
type DuplicateNodeError struct {
	ID domain.NodeID
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("%s: %d", domain.ErrDuplicateNodeID, e.ID)
}

// Is matches domain.ErrDuplicateNodeID.
func (e *DuplicateNodeError) Is(target error) bool {
	return target == domain.ErrDuplicateNodeID
}

// DanglingTargetsError lists every choice target missing from the graph, ascending.
type DanglingTargetsError struct {
	Missing []domain.NodeID
}

func (e *DanglingTargetsError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s: %s", domain.ErrDanglingTargets, strings.Join(parts, ", "))
}

// Is matches domain.ErrDanglingTargets.
func (e *DanglingTargetsError) Is(target error) bool {
	return target == domain.ErrDanglingTargets
}

// Build indexes nodes by id and validates the result.
//
// It fails with *DuplicateNodeError on the first repeated id and with
// *DanglingTargetsError naming all targets that are not present.
func Build[D, C any](nodes []*domain.Node[D, C]) (*Graph[D, C], error) {
	if len(nodes) == 0 {
		return nil, domain.ErrEmptyGraph
	}

	g := &Graph[D, C]{
		nodes: make(map[domain.NodeID]*domain.Node[D, C], len(nodes)),
		order: make([]domain.NodeID, 0, len(nodes)),
	}

	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("build graph: input %d: %w", i, domain.ErrNilNode)
		}
		if _, exists := g.nodes[n.ID()]; exists {
			return nil, &DuplicateNodeError{ID: n.ID()}
		}
		g.nodes[n.ID()] = n
		g.order = append(g.order, n.ID())
	}

	if missing := g.missingTargets(); len(missing) > 0 {
		return nil, &DanglingTargetsError{Missing: missing}
	}

	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	return g, nil
}

func (g *Graph[D, C]) missingTargets() []domain.NodeID {
	seen := make(map[domain.NodeID]bool)
	var missing []domain.NodeID
	for _, id := range g.order {
		for _, c := range g.nodes[id].Choices() {
			target, ok := c.Target().Node()
			if !ok {
				continue
			}
			if _, present := g.nodes[target]; present || seen[target] {
				continue
			}
			seen[target] = true
			missing = append(missing, target)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// Get returns the node with the given id.
func (g *Graph[D, C]) Get(id domain.NodeID) (*domain.Node[D, C], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Node returns the node with the given id, or an error if it is absent.
func (g *Graph[D, C]) Node(id domain.NodeID) (*domain.Node[D, C], error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d not in graph", id)
	}
	return n, nil
}

// Has reports whether id is a node of the graph.
func (g *Graph[D, C]) Has(id domain.NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[D, C]) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes ordered by id.
func (g *Graph[D, C]) Nodes() []*domain.Node[D, C] {
	out := make([]*domain.Node[D, C], len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}
