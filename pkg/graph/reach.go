package graph

import (
	"sort"

	"github.com/aretw0/parley/pkg/domain"
)

// Reachable returns the ids reachable from start, start included, in breadth-first order.
// An id absent from the graph yields nil.
func (g *Graph[D, C]) Reachable(start domain.NodeID) []domain.NodeID {
	if !g.Has(start) {
		return nil
	}

	visited := map[domain.NodeID]bool{start: true}
	queue := []domain.NodeID{start}
	var out []domain.NodeID

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		out = append(out, current)

		for _, c := range g.nodes[current].Choices() {
			next, ok := c.Target().Node()
			if !ok || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return out
}

// Unreachable returns the ids that no path from start can visit, ascending.
func (g *Graph[D, C]) Unreachable(start domain.NodeID) []domain.NodeID {
	reached := make(map[domain.NodeID]bool)
	for _, id := range g.Reachable(start) {
		reached[id] = true
	}

	var out []domain.NodeID
	for _, id := range g.order {
		if !reached[id] {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terminals returns the ids of nodes that offer at least one terminal choice, ascending.
func (g *Graph[D, C]) Terminals() []domain.NodeID {
	var out []domain.NodeID
	for _, id := range g.order {
		for _, c := range g.nodes[id].Choices() {
			if c.Target().IsTerminal() {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
