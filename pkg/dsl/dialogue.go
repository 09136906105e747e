package dsl

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/graph"
	"github.com/aretw0/parley/pkg/ids"
	"github.com/aretw0/parley/pkg/values"
)

// Dialogue is a validated graph together with the names of its nodes.
type Dialogue[K comparable, D, C any] struct {
	graph  *graph.Graph[D, C]
	ids    *ids.Registry[K]
	logger *slog.Logger
}

// Graph returns the validated graph.
func (d *Dialogue[K, D, C]) Graph() *graph.Graph[D, C] {
	return d.graph
}

// IDs returns the registry that resolved node names.
func (d *Dialogue[K, D, C]) IDs() *ids.Registry[K] {
	return d.ids
}

// ID resolves a node name.
func (d *Dialogue[K, D, C]) ID(name K) (domain.NodeID, error) {
	id, ok := d.ids.Lookup(name)
	if !ok || !d.graph.Has(id) {
		return 0, fmt.Errorf("node %v: %w", name, domain.ErrUnknownStart)
	}
	return id, nil
}

// Label returns the name of id for display.
func (d *Dialogue[K, D, C]) Label(id domain.NodeID) string {
	return d.ids.Label(id)
}

// Unreachable returns the names of the nodes no path from start visits.
func (d *Dialogue[K, D, C]) Unreachable(start K) ([]K, error) {
	id, err := d.ID(start)
	if err != nil {
		return nil, err
	}
	var out []K
	for _, n := range d.graph.Unreachable(id) {
		name, _ := d.ids.LookupExternal(n)
		out = append(out, name)
	}
	return out, nil
}

// Runner starts a runner at the node named start.
// Nodes that cannot be reached from start are logged as warnings.
// The builder's logger is used unless opts sets another one.
func (d *Dialogue[K, D, C]) Runner(reg *values.Registry, start K, opts ...parley.Option) (*parley.Runner[D, C], error) {
	id, err := d.ID(start)
	if err != nil {
		return nil, err
	}
	for _, n := range d.graph.Unreachable(id) {
		d.logger.Warn("node unreachable from start", "node", d.ids.Label(n), "start", fmt.Sprint(start))
	}

	opts = append([]parley.Option{parley.WithLogger(d.logger)}, opts...)
	return parley.NewRunner(d.graph, reg, id, opts...)
}

// BuildRunner builds the dialogue and starts a runner at start.
func (b *Builder[K, D, C]) BuildRunner(reg *values.Registry, start K, opts ...parley.Option) (*parley.Runner[D, C], error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	return d.Runner(reg, start, opts...)
}
