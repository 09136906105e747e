package domain

import "errors"

// Build-time errors.
var (
	// ErrEmptyChoiceList is returned when a node is created without choices.
	ErrEmptyChoiceList = errors.New("node has no choices")

	// ErrNilChoice is returned when a node is given a nil choice.
	ErrNilChoice = errors.New("nil choice")

	// ErrNilNode is returned when a graph is given a nil node.
	ErrNilNode = errors.New("nil node")

	// ErrDuplicateNodeID is returned when two nodes of a graph share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrDanglingTargets is returned when choices point at nodes missing from the graph.
	ErrDanglingTargets = errors.New("dangling choice targets")

	// ErrEmptyGraph is returned when a graph is built from no nodes.
	ErrEmptyGraph = errors.New("graph has no nodes")

	// ErrUnknownStart is returned when a runner is created with a start node missing from its graph.
	ErrUnknownStart = errors.New("start node not in graph")
)

// Traversal-time errors. The runner state is unchanged when one is returned.
var (
	// ErrForeignChoice is returned when the choice does not belong to the current node.
	ErrForeignChoice = errors.New("choice does not belong to the current node")

	// ErrAlreadyTerminal is returned when choosing after the dialogue has ended.
	ErrAlreadyTerminal = errors.New("dialogue already ended")

	// ErrConditionNotMet is returned when the choice's condition evaluates false.
	ErrConditionNotMet = errors.New("choice condition not met")
)
