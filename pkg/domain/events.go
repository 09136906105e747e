package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter EventType = "node_enter"
	EventChoice    EventType = "choice"
	EventReject    EventType = "reject"
	EventComplete  EventType = "complete"
	EventReset     EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent reports entering a node, completing the dialogue from a node, or a reset to the start node.
type NodeEvent struct {
	EventBase
	NodeID NodeID `json:"node_id"`
}

// ChoiceEvent reports an accepted choice, after its action ran.
type ChoiceEvent struct {
	EventBase
	From   NodeID `json:"from"`
	Index  int    `json:"index"`
	Target Target `json:"-"`
}

// RejectEvent reports a Choose call that failed. Err is one of the traversal errors.
type RejectEvent struct {
	EventBase
	NodeID NodeID `json:"node_id"`
	Index  int    `json:"index"` // -1 when the choice is foreign
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for runner observability.
// Hooks run synchronously and cannot change the outcome of the call that fired them.
type LifecycleHooks struct {
	OnNodeEnter func(*NodeEvent)
	OnChoice    func(*ChoiceEvent)
	OnReject    func(*RejectEvent)
	OnComplete  func(*NodeEvent)
	OnReset     func(*NodeEvent)
}
