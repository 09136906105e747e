package session

import (
	"fmt"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/story"
)

// Play is one running dialogue with string content.
type Play struct {
	Title  string
	Runner *parley.Runner[string, string]
	// Label names nodes; nil falls back to internal ids.
	Label func(domain.NodeID) string
	// Values snapshots the declared values; may be nil.
	Values func() map[string]any
}

// Factory creates the Play of a new session.
type Factory func() (*Play, error)

// HookFunc builds runner hooks that name nodes with label.
// observability.Metrics.Hooks has this shape.
type HookFunc func(label func(domain.NodeID) string) domain.LifecycleHooks

// BindHooks binds every builder to label and combines the results.
func BindHooks(label func(domain.NodeID) string, hooks ...HookFunc) domain.LifecycleHooks {
	var bound []domain.LifecycleHooks
	for _, h := range hooks {
		if h != nil {
			bound = append(bound, h(label))
		}
	}
	return observability.Combine(bound...)
}

// FromDocument compiles doc afresh for every session, so sessions never share
// a value registry. Each hook builder is bound to the compiled story's labels.
func FromDocument(doc *story.Document, hooks ...HookFunc) Factory {
	return func() (*Play, error) {
		s, err := doc.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile story: %w", err)
		}

		r, err := s.NewRunner(parley.WithLifecycleHooks(BindHooks(s.Label, hooks...)))
		if err != nil {
			return nil, err
		}
		return &Play{Title: s.Title, Runner: r, Label: s.Label, Values: s.Snapshot}, nil
	}
}

// View is a serializable picture of a Play.
type View struct {
	ID        string         `json:"id,omitempty"`
	Title     string         `json:"title,omitempty"`
	Node      string         `json:"node,omitempty"`
	Content   string         `json:"content,omitempty"`
	Choices   []ChoiceView   `json:"choices"`
	Completed bool           `json:"completed"`
	Values    map[string]any `json:"values,omitempty"`
	Path      []string       `json:"path"`
}

// ChoiceView describes one choice of the current node.
// Index is the position to pass to Play.Choose.
type ChoiceView struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Available bool   `json:"available"`
	Terminal  bool   `json:"terminal"`
	To        string `json:"to,omitempty"`
}

// View renders the current position of p.
func (p *Play) View() View {
	v := View{
		Title:     p.Title,
		Completed: p.Runner.IsCompleted(),
		Choices:   []ChoiceView{},
	}
	for _, id := range p.Runner.Visited() {
		v.Path = append(v.Path, p.label(id))
	}
	if p.Values != nil {
		v.Values = p.Values()
	}

	node, ok := p.Runner.Current()
	if !ok {
		return v
	}
	v.Node = p.label(node.ID())
	v.Content = node.Content()
	for i, c := range node.Choices() {
		cv := ChoiceView{
			Index:     i,
			Text:      c.Content(),
			Available: p.Runner.IsAvailable(c),
			Terminal:  c.Target().IsTerminal(),
		}
		if id, ok := c.Target().Node(); ok {
			cv.To = p.label(id)
		}
		v.Choices = append(v.Choices, cv)
	}
	return v
}

// Choose takes the choice at index among all choices of the current node.
// Failures carry the runner's domain errors.
func (p *Play) Choose(index int) (View, error) {
	if _, err := p.Runner.ChooseIndex(index); err != nil {
		return View{}, err
	}
	return p.View(), nil
}

// Reset restarts the dialogue, keeping the values.
func (p *Play) Reset() View {
	p.Runner.Reset()
	return p.View()
}

func (p *Play) label(id domain.NodeID) string {
	if p.Label == nil {
		return domain.To(id).String()
	}
	return p.Label(id)
}
