package parley

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/graph"
	"github.com/aretw0/parley/pkg/values"
)

// Runner is the traversal cursor over a Graph.
//
// It starts active at the start node, moves on every accepted Choose, and
// becomes completed once a terminal choice is taken. Only Choose and Reset
// change its state. A Runner must not be used from several goroutines at once.
type Runner[D, C any] struct {
	graph  *graph.Graph[D, C]
	values *values.Registry
	start  domain.NodeID

	current   domain.NodeID
	completed bool
	visited   []domain.NodeID

	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// NewRunner binds a runner to g, reg and start.
// reg may be nil; conditions then evaluate against no registry.
// It fails with domain.ErrUnknownStart if start is not a node of g.
func NewRunner[D, C any](g *graph.Graph[D, C], reg *values.Registry, start domain.NodeID, opts ...Option) (*Runner[D, C], error) {
	if g == nil {
		return nil, fmt.Errorf("new runner: nil graph")
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("new runner: node %d: %w", start, domain.ErrUnknownStart)
	}

	cfg := newConfig(opts)
	r := &Runner[D, C]{
		graph:   g,
		values:  reg,
		start:   start,
		current: start,
		visited: []domain.NodeID{start},
		logger:  cfg.logger,
		hooks:   cfg.hooks,
	}
	r.enter(start)
	return r, nil
}

// Current returns the occupied node, or false once the dialogue has ended.
func (r *Runner[D, C]) Current() (*domain.Node[D, C], bool) {
	if r.completed {
		return nil, false
	}
	return r.graph.Get(r.current)
}

// AllChoices returns every choice of the current node in authored order.
// It is empty once the dialogue has ended.
func (r *Runner[D, C]) AllChoices() []*domain.Choice[C] {
	node, ok := r.Current()
	if !ok {
		return nil
	}
	return node.Choices()
}

// AvailableChoices returns the choices of the current node whose condition is
// absent or holds against the bound registry, in authored order.
// Choose accepts exactly the choices this returns.
func (r *Runner[D, C]) AvailableChoices() []*domain.Choice[C] {
	all := r.AllChoices()
	out := make([]*domain.Choice[C], 0, len(all))
	for _, c := range all {
		if r.available(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsAvailable reports whether c would currently be accepted by Choose.
func (r *Runner[D, C]) IsAvailable(c *domain.Choice[C]) bool {
	node, ok := r.Current()
	if !ok || !node.Owns(c) {
		return false
	}
	return r.available(c)
}

func (r *Runner[D, C]) available(c *domain.Choice[C]) bool {
	cond, ok := c.Condition()
	return !ok || cond.Evaluate(r.values)
}

// Choose takes choice c from the current node.
//
// It returns true when the dialogue continues and false when c was terminal.
// It fails with domain.ErrAlreadyTerminal, domain.ErrForeignChoice or
// domain.ErrConditionNotMet, in that order of precedence, leaving the runner
// untouched. On success the choice's action runs exactly once, before the move.
func (r *Runner[D, C]) Choose(c *domain.Choice[C]) (bool, error) {
	if r.completed {
		return false, r.reject(-1, domain.ErrAlreadyTerminal)
	}

	node, _ := r.graph.Get(r.current)
	index := node.IndexOf(c)
	if index < 0 {
		return false, r.reject(-1, domain.ErrForeignChoice)
	}
	if !r.available(c) {
		return false, r.reject(index, domain.ErrConditionNotMet)
	}

	if act, ok := c.Action(); ok {
		act.Execute(r.values)
	}

	from := r.current
	target := c.Target()
	r.logger.Debug("choice taken", "node", from, "index", index, "target", target.String())

	if r.hooks.OnChoice != nil {
		r.hooks.OnChoice(&domain.ChoiceEvent{
			EventBase: r.event(domain.EventChoice),
			From:      from,
			Index:     index,
			Target:    target,
		})
	}

	next, ok := target.Node()
	if !ok {
		r.completed = true
		r.logger.Debug("dialogue completed", "node", from)
		if r.hooks.OnComplete != nil {
			r.hooks.OnComplete(&domain.NodeEvent{EventBase: r.event(domain.EventComplete), NodeID: from})
		}
		return false, nil
	}

	r.current = next
	r.visited = append(r.visited, next)
	r.enter(next)
	return true, nil
}

// ChooseIndex takes the choice at position i among AllChoices.
// An index out of range fails with domain.ErrForeignChoice.
func (r *Runner[D, C]) ChooseIndex(i int) (bool, error) {
	if r.completed {
		return false, r.reject(-1, domain.ErrAlreadyTerminal)
	}
	node, _ := r.graph.Get(r.current)
	c, ok := node.Choice(i)
	if !ok {
		return false, r.reject(-1, fmt.Errorf("choice %d of %d: %w", i, node.Len(), domain.ErrForeignChoice))
	}
	return r.Choose(c)
}

// Reset moves the runner back to the start node and clears the completed flag.
// The value registry is left as it is.
func (r *Runner[D, C]) Reset() {
	r.current = r.start
	r.completed = false
	r.visited = []domain.NodeID{r.start}

	r.logger.Debug("runner reset", "start", r.start)
	if r.hooks.OnReset != nil {
		r.hooks.OnReset(&domain.NodeEvent{EventBase: r.event(domain.EventReset), NodeID: r.start})
	}
	r.enter(r.start)
}

// IsCompleted reports whether a terminal choice has been taken since the last reset.
func (r *Runner[D, C]) IsCompleted() bool {
	return r.completed
}

// Start returns the node the runner starts and resets at.
func (r *Runner[D, C]) Start() domain.NodeID {
	return r.start
}

// Graph returns the graph the runner walks.
func (r *Runner[D, C]) Graph() *graph.Graph[D, C] {
	return r.graph
}

// Values returns the bound registry, possibly nil.
func (r *Runner[D, C]) Values() *values.Registry {
	return r.values
}

// Visited returns the ids of the nodes entered since the last reset, in order.
func (r *Runner[D, C]) Visited() []domain.NodeID {
	out := make([]domain.NodeID, len(r.visited))
	copy(out, r.visited)
	return out
}

func (r *Runner[D, C]) enter(id domain.NodeID) {
	r.logger.Debug("node entered", "node", id)
	if r.hooks.OnNodeEnter != nil {
		r.hooks.OnNodeEnter(&domain.NodeEvent{EventBase: r.event(domain.EventNodeEnter), NodeID: id})
	}
}

func (r *Runner[D, C]) reject(index int, err error) error {
	r.logger.Debug("choice rejected", "node", r.current, "index", index, "err", err)
	if r.hooks.OnReject != nil {
		r.hooks.OnReject(&domain.RejectEvent{
			EventBase: r.event(domain.EventReject),
			NodeID:    r.current,
			Index:     index,
			Err:       err,
		})
	}
	return err
}

func (r *Runner[D, C]) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t}
}
