package domain

import "fmt"

// NodeID is the internal identifier of a node.
// Ids are dense, start at 0 and are assigned in registration order.
type NodeID int

// Target is the destination of a Choice: a node, or the end of the dialogue.
type Target struct {
	id       NodeID
	terminal bool
}

// To returns a Target pointing at id.
func To(id NodeID) Target {
	return Target{id: id}
}

// End is the Target of a terminal choice.
var End = Target{terminal: true}

// Node returns the target node and true, or false for a terminal target.
func (t Target) Node() (NodeID, bool) {
	if t.terminal {
		return 0, false
	}
	return t.id, true
}

// IsTerminal reports whether taking the choice ends the dialogue.
func (t Target) IsTerminal() bool {
	return t.terminal
}

func (t Target) String() string {
	if t.terminal {
		return "end"
	}
	return fmt.Sprintf("#%d", t.id)
}

// Choice is one selectable option of a Node.
// Choices are compared by identity: the runner only accepts the exact *Choice
// attached to the current node.
type Choice[C any] struct {
	content   C
	target    Target
	condition Condition
	action    Action
}

// NewChoice creates a choice. cond and act may be nil when absent.
func NewChoice[C any](content C, target Target, cond Condition, act Action) *Choice[C] {
	return &Choice[C]{
		content:   content,
		target:    target,
		condition: cond,
		action:    act,
	}
}

// Content returns the display content of the choice.
func (c *Choice[C]) Content() C {
	return c.content
}

// Target returns where the choice leads.
func (c *Choice[C]) Target() Target {
	return c.target
}

// Condition returns the availability predicate, if any.
func (c *Choice[C]) Condition() (Condition, bool) {
	return c.condition, c.condition != nil
}

// Action returns the side effect, if any.
func (c *Choice[C]) Action() (Action, bool) {
	return c.action, c.action != nil
}

// Node is a step of the dialogue: display content plus at least one choice.
type Node[D, C any] struct {
	id      NodeID
	content D
	choices []*Choice[C]
}

// NewNode creates a node. It fails with ErrEmptyChoiceList when no choices are
// given and with ErrNilChoice when one of them is nil.
func NewNode[D, C any](id NodeID, content D, choices ...*Choice[C]) (*Node[D, C], error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("node %d: %w", id, ErrEmptyChoiceList)
	}
	for i, c := range choices {
		if c == nil {
			return nil, fmt.Errorf("node %d choice %d: %w", id, i, ErrNilChoice)
		}
	}

	owned := make([]*Choice[C], len(choices))
	copy(owned, choices)

	return &Node[D, C]{
		id:      id,
		content: content,
		choices: owned,
	}, nil
}

// ID returns the internal id of the node.
func (n *Node[D, C]) ID() NodeID {
	return n.id
}

// Content returns the display content of the node.
func (n *Node[D, C]) Content() D {
	return n.content
}

// Choices returns the choices in authored order.
// The slice is a copy; the *Choice values are the node's own.
func (n *Node[D, C]) Choices() []*Choice[C] {
	out := make([]*Choice[C], len(n.choices))
	copy(out, n.choices)
	return out
}

// Len returns the number of choices.
func (n *Node[D, C]) Len() int {
	return len(n.choices)
}

// Choice returns the choice at index i.
func (n *Node[D, C]) Choice(i int) (*Choice[C], bool) {
	if i < 0 || i >= len(n.choices) {
		return nil, false
	}
	return n.choices[i], true
}

// Owns reports whether c is one of the node's choices, by identity.
func (n *Node[D, C]) Owns(c *Choice[C]) bool {
	return n.IndexOf(c) >= 0
}

// IndexOf returns the position of c among the node's choices, or -1.
func (n *Node[D, C]) IndexOf(c *Choice[C]) int {
	if c == nil {
		return -1
	}
	for i, own := range n.choices {
		if own == c {
			return i
		}
	}
	return -1
}
