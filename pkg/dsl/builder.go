package dsl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/graph"
	"github.com/aretw0/parley/pkg/ids"
)

// Builder manages the graph construction.
// Node names of type K are resolved through an ids.Registry, so targets may be
// referenced before the node that defines them.
type Builder[K comparable, D, C any] struct {
	ids     *ids.Registry[K]
	nodes   []*domain.Node[D, C]
	defined map[K]bool
	open    map[K]bool
	errs    []error
	logger  *slog.Logger
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for authoring warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a new graph builder.
func New[K comparable, D, C any](opts ...Option) *Builder[K, D, C] {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder[K, D, C]{
		ids:     ids.New[K](ids.WithLogger(o.logger)),
		defined: make(map[K]bool),
		open:    make(map[K]bool),
		logger:  o.logger,
	}
}

// IDs returns the registry resolving node names.
func (b *Builder[K, D, C]) IDs() *ids.Registry[K] {
	return b.ids
}

// Node starts a node with the given name and content.
// Choices are added on the returned NodeBuilder, which must be finalized with Done.
// Ids are allocated in order of first mention, node or target.
func (b *Builder[K, D, C]) Node(id K, content D) *NodeBuilder[K, D, C] {
	b.ids.GetOrRegister(id)
	b.open[id] = true
	return &NodeBuilder[K, D, C]{
		builder: b,
		id:      id,
		content: content,
	}
}

// Linear adds a node with a single choice leading to target.
func (b *Builder[K, D, C]) Linear(id K, content D, target K, choice C, opts ...ChoiceOption) *Builder[K, D, C] {
	return b.Node(id, content).Choice(target, choice, opts...).Done()
}

// Terminal adds a node with a single choice that ends the dialogue.
func (b *Builder[K, D, C]) Terminal(id K, content D, choice C, opts ...ChoiceOption) *Builder[K, D, C] {
	return b.Node(id, content).End(choice, opts...).Done()
}

func (b *Builder[K, D, C]) finalize(nb *NodeBuilder[K, D, C]) {
	delete(b.open, nb.id)

	if b.defined[nb.id] {
		b.errs = append(b.errs, fmt.Errorf("node %v defined twice: %w", nb.id, domain.ErrDuplicateNodeID))
		return
	}
	b.defined[nb.id] = true

	node, err := domain.NewNode(b.ids.GetOrRegister(nb.id), nb.content, nb.choices...)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("node %v: %w", nb.id, err))
		return
	}
	b.nodes = append(b.nodes, node)
}

// Build validates every node added so far and returns the dialogue.
// All authoring errors are reported together.
func (b *Builder[K, D, C]) Build() (*Dialogue[K, D, C], error) {
	errs := append([]error(nil), b.errs...)
	for id := range b.open {
		errs = append(errs, fmt.Errorf("node %v was never finalized with Done", id))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	g, err := graph.Build(b.nodes)
	if err != nil {
		return nil, b.describe(err)
	}

	return &Dialogue[K, D, C]{
		graph:  g,
		ids:    b.ids,
		logger: b.logger,
	}, nil
}

// describe rewrites graph errors with node names.
func (b *Builder[K, D, C]) describe(err error) error {
	var dangling *graph.DanglingTargetsError
	if errors.As(err, &dangling) {
		names := make([]string, len(dangling.Missing))
		for i, id := range dangling.Missing {
			names[i] = b.ids.Label(id)
		}
		return fmt.Errorf("targets never defined [%s]: %w", strings.Join(names, ", "), err)
	}
	var dup *graph.DuplicateNodeError
	if errors.As(err, &dup) {
		return fmt.Errorf("node %s: %w", b.ids.Label(dup.ID), err)
	}
	return err
}

// NodeBuilder accumulates the choices of one node.
type NodeBuilder[K comparable, D, C any] struct {
	builder *Builder[K, D, C]
	id      K
	content D
	choices []*domain.Choice[C]
}

// Choice adds a choice leading to the node named target.
func (n *NodeBuilder[K, D, C]) Choice(target K, content C, opts ...ChoiceOption) *NodeBuilder[K, D, C] {
	return n.add(domain.To(n.builder.ids.GetOrRegister(target)), content, opts)
}

// End adds a terminal choice.
func (n *NodeBuilder[K, D, C]) End(content C, opts ...ChoiceOption) *NodeBuilder[K, D, C] {
	return n.add(domain.End, content, opts)
}

func (n *NodeBuilder[K, D, C]) add(target domain.Target, content C, opts []ChoiceOption) *NodeBuilder[K, D, C] {
	var s choiceSpec
	for _, opt := range opts {
		opt(&s)
	}
	n.choices = append(n.choices, domain.NewChoice(content, target, s.condition(), s.action()))
	return n
}

// Done finalizes the node and returns the parent builder.
// A node without choices is recorded as an error and reported by Build.
func (n *NodeBuilder[K, D, C]) Done() *Builder[K, D, C] {
	n.builder.finalize(n)
	return n.builder
}
