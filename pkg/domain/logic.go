package domain

import "github.com/aretw0/parley/pkg/values"

// Condition gates the availability of a Choice.
// Implementations must be pure: evaluating a condition never changes the registry.
// A nil registry means no shared state is bound; conditions should report false.
type Condition interface {
	Evaluate(reg *values.Registry) bool
}

// Action is the side effect of taking a Choice.
// A nil registry means no shared state is bound; actions should do nothing.
type Action interface {
	Execute(reg *values.Registry)
}

// ConditionFunc adapts a function to Condition.
type ConditionFunc func(reg *values.Registry) bool

// Evaluate calls f.
func (f ConditionFunc) Evaluate(reg *values.Registry) bool {
	return f(reg)
}

// ActionFunc adapts a function to Action.
type ActionFunc func(reg *values.Registry)

// Execute calls f.
func (f ActionFunc) Execute(reg *values.Registry) {
	f(reg)
}

// CompositeCondition is true only when every condition is true.
// Conditions are evaluated in authored order and all of them are evaluated.
type CompositeCondition []Condition

// All combines conditions with a logical AND. An empty set is true.
func All(conds ...Condition) CompositeCondition {
	return CompositeCondition(conds)
}

// Evaluate implements Condition.
func (cc CompositeCondition) Evaluate(reg *values.Registry) bool {
	ok := true
	for _, c := range cc {
		if c == nil {
			continue
		}
		if !c.Evaluate(reg) {
			ok = false
		}
	}
	return ok
}

// AnyCondition is true when at least one condition is true.
type AnyCondition []Condition

// Any combines conditions with a logical OR. An empty set is false.
func Any(conds ...Condition) AnyCondition {
	return AnyCondition(conds)
}

// Evaluate implements Condition.
func (ac AnyCondition) Evaluate(reg *values.Registry) bool {
	ok := false
	for _, c := range ac {
		if c != nil && c.Evaluate(reg) {
			ok = true
		}
	}
	return ok
}

// Not negates a condition. The nil-registry fail-safe still applies: Not never
// turns "no state bound" into true.
func Not(c Condition) Condition {
	return ConditionFunc(func(reg *values.Registry) bool {
		if reg == nil {
			return false
		}
		return !c.Evaluate(reg)
	})
}

// CompositeAction runs actions in sequence against the same registry.
// There is no rollback; actions are expected not to fail.
type CompositeAction []Action

// Sequence combines actions into one.
func Sequence(acts ...Action) CompositeAction {
	return CompositeAction(acts)
}

// Execute implements Action.
func (ca CompositeAction) Execute(reg *values.Registry) {
	for _, a := range ca {
		if a != nil {
			a.Execute(reg)
		}
	}
}
