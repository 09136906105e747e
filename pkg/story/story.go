package story

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
	"github.com/aretw0/parley/pkg/values"
)

// Story is a compiled document: its dialogue plus a registry holding the
// declared values. Handles are bound to that registry, so every independent
// session needs its own Compile.
type Story struct {
	Title string
	start string

	dialogue *dsl.Dialogue[string, string, string]
	values   *values.Registry
	numbers  map[string]values.Handle[int]
	flags    map[string]values.Handle[bool]
}

// Compile builds the dialogue and a fresh value registry for the document.
func (doc *Document) Compile(opts ...dsl.Option) (*Story, error) {
	s := &Story{
		Title:   doc.Title,
		start:   doc.Start,
		values:  values.New(),
		numbers: make(map[string]values.Handle[int]),
		flags:   make(map[string]values.Handle[bool]),
	}
	if err := s.declare(doc.Values); err != nil {
		return nil, err
	}

	var errs []error
	b := dsl.New[string, string, string](opts...)
	for _, n := range doc.Nodes {
		nb := b.Node(n.ID, n.Text)
		for i, c := range n.Choices {
			copts, err := s.choiceOptions(c)
			if err != nil {
				errs = append(errs, fmt.Errorf("node %s choice %d: %w", n.ID, i, err))
				continue
			}
			if c.To == "" {
				nb.End(c.Text, copts...)
			} else {
				nb.Choice(c.To, c.Text, copts...)
			}
		}
		nb.Done()
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	if _, err := d.ID(doc.Start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	s.dialogue = d
	return s, nil
}

func (s *Story) declare(decl map[string]any) error {
	for _, key := range sortedKeys(decl) {
		var err error
		switch v := decl[key].(type) {
		case int:
			s.numbers[key], err = values.Register(s.values, key, v)
		case bool:
			s.flags[key], err = values.Register(s.values, key, v)
		default:
			err = fmt.Errorf("value %q is %T, want int or bool: %w", key, v, ErrValueKind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Story) choiceOptions(c ChoiceSpec) ([]dsl.ChoiceOption, error) {
	var opts []dsl.ChoiceOption
	if c.When != nil {
		cond, err := s.guard(c.When)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dsl.When(cond))
	}
	if c.Do != nil {
		act, err := s.effect(c.Do)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dsl.Then(act))
	}
	return opts, nil
}

func (s *Story) guard(g *Guard) (domain.Condition, error) {
	var conds []domain.Condition
	for _, key := range sortedKeys(g.Min) {
		h, err := s.number(key)
		if err != nil {
			return nil, err
		}
		conds = append(conds, atLeast(h, g.Min[key]))
	}
	for _, key := range g.Flags {
		h, err := s.flag(key)
		if err != nil {
			return nil, err
		}
		conds = append(conds, isSet(h))
	}
	for _, key := range g.NotFlags {
		h, err := s.flag(key)
		if err != nil {
			return nil, err
		}
		conds = append(conds, domain.Not(isSet(h)))
	}
	return domain.All(conds...), nil
}

func (s *Story) effect(e *Effect) (domain.Action, error) {
	var acts []domain.Action
	for _, key := range sortedKeys(e.Add) {
		h, err := s.number(key)
		if err != nil {
			return nil, err
		}
		acts = append(acts, add(h, e.Add[key]))
	}
	for _, key := range sortedKeys(e.Set) {
		h, err := s.flag(key)
		if err != nil {
			return nil, err
		}
		acts = append(acts, set(h, e.Set[key]))
	}
	return domain.Sequence(acts...), nil
}

func (s *Story) number(key string) (values.Handle[int], error) {
	if h, ok := s.numbers[key]; ok {
		return h, nil
	}
	if _, ok := s.flags[key]; ok {
		return values.Handle[int]{}, fmt.Errorf("%q is a flag: %w", key, ErrValueKind)
	}
	return values.Handle[int]{}, fmt.Errorf("%q: %w", key, ErrUnknownValue)
}

func (s *Story) flag(key string) (values.Handle[bool], error) {
	if h, ok := s.flags[key]; ok {
		return h, nil
	}
	if _, ok := s.numbers[key]; ok {
		return values.Handle[bool]{}, fmt.Errorf("%q is a number: %w", key, ErrValueKind)
	}
	return values.Handle[bool]{}, fmt.Errorf("%q: %w", key, ErrUnknownValue)
}

// NewRunner starts a runner at the story's start node.
// Runners of the same Story share its value registry.
func (s *Story) NewRunner(opts ...parley.Option) (*parley.Runner[string, string], error) {
	return s.dialogue.Runner(s.values, s.start, opts...)
}

// Dialogue returns the compiled dialogue.
func (s *Story) Dialogue() *dsl.Dialogue[string, string, string] {
	return s.dialogue
}

// Values returns the registry holding the declared values.
func (s *Story) Values() *values.Registry {
	return s.values
}

// StartID returns the name of the start node.
func (s *Story) StartID() string {
	return s.start
}

// Label returns the authored id of a node.
func (s *Story) Label(id domain.NodeID) string {
	return s.dialogue.Label(id)
}

// Unreachable lists the authored ids no path from the start visits.
func (s *Story) Unreachable() []string {
	out, _ := s.dialogue.Unreachable(s.start)
	return out
}

// Snapshot returns the current declared values by key.
func (s *Story) Snapshot() map[string]any {
	out := make(map[string]any, len(s.numbers)+len(s.flags))
	for k, h := range s.numbers {
		if v, err := values.Get(s.values, h); err == nil {
			out[k] = v
		}
	}
	for k, h := range s.flags {
		if v, err := values.Get(s.values, h); err == nil {
			out[k] = v
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
