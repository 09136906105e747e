package story

import (
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/values"
)

func atLeast(h values.Handle[int], n int) domain.Condition {
	return domain.ConditionFunc(func(reg *values.Registry) bool {
		if reg == nil {
			return false
		}
		v, err := values.Get(reg, h)
		return err == nil && v >= n
	})
}

func isSet(h values.Handle[bool]) domain.Condition {
	return domain.ConditionFunc(func(reg *values.Registry) bool {
		if reg == nil {
			return false
		}
		v, err := values.Get(reg, h)
		return err == nil && v
	})
}

func add(h values.Handle[int], delta int) domain.Action {
	return domain.ActionFunc(func(reg *values.Registry) {
		if reg != nil {
			_ = values.Update(reg, h, func(v int) int { return v + delta })
		}
	})
}

func set(h values.Handle[bool], v bool) domain.Action {
	return domain.ActionFunc(func(reg *values.Registry) {
		if reg != nil {
			_ = values.Set(reg, h, v)
		}
	})
}
