package dsl

import "github.com/aretw0/parley/pkg/domain"

// ChoiceOption configures a choice being added to a node.
type ChoiceOption func(*choiceSpec)

type choiceSpec struct {
	conditions []domain.Condition
	actions    []domain.Action
}

// When guards the choice. Several When options are combined with domain.All.
func When(cond domain.Condition) ChoiceOption {
	return func(s *choiceSpec) {
		if cond != nil {
			s.conditions = append(s.conditions, cond)
		}
	}
}

// Then attaches a side effect. Several Then options run in order.
func Then(act domain.Action) ChoiceOption {
	return func(s *choiceSpec) {
		if act != nil {
			s.actions = append(s.actions, act)
		}
	}
}

func (s choiceSpec) condition() domain.Condition {
	switch len(s.conditions) {
	case 0:
		return nil
	case 1:
		return s.conditions[0]
	default:
		return domain.All(s.conditions...)
	}
}

func (s choiceSpec) action() domain.Action {
	switch len(s.actions) {
	case 0:
		return nil
	case 1:
		return s.actions[0]
	default:
		return domain.Sequence(s.actions...)
	}
}
