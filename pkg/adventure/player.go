package adventure

import (
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/values"
)

// Resource is one of the player's counters.
type Resource int

const (
	Health Resource = iota
	Mana
	Gold
)

var resourceNames = [...]string{"health", "mana", "gold"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("Resource(%d)", int(r))
	}
	return resourceNames[r]
}

// DefaultAmount is the starting value of every resource.
const DefaultAmount = 100

// Player holds the handles of the three resources in a value registry.
type Player struct {
	reg     *values.Registry
	handles [3]values.Handle[int]
}

// NewPlayer registers the resources in reg. Negative amounts are stored as 0.
func NewPlayer(reg *values.Registry, health, mana, gold int) (*Player, error) {
	p := &Player{reg: reg}
	for r, amount := range [3]int{health, mana, gold} {
		h, err := values.Register(reg, Resource(r).String(), max(0, amount))
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", Resource(r), err)
		}
		p.handles[r] = h
	}
	return p, nil
}

// NewDefaultPlayer starts every resource at DefaultAmount in a fresh registry.
func NewDefaultPlayer() *Player {
	p, err := NewPlayer(values.New(), DefaultAmount, DefaultAmount, DefaultAmount)
	if err != nil {
		panic(err) // a fresh registry has no keys
	}
	return p
}

// Values returns the registry holding the resources.
func (p *Player) Values() *values.Registry {
	return p.reg
}

// Handle returns the handle of r.
func (p *Player) Handle(r Resource) values.Handle[int] {
	return p.handles[r]
}

// Get returns the current amount of r, or 0 if it cannot be read.
func (p *Player) Get(r Resource) int {
	v, err := values.Get(p.reg, p.handles[r])
	if err != nil {
		return 0
	}
	return v
}

// Score is twice the health plus the mana plus half the gold.
func (p *Player) Score() int {
	return 2*p.Get(Health) + p.Get(Mana) + p.Get(Gold)/2
}

// Snapshot returns the resources by name.
func (p *Player) Snapshot() map[string]any {
	return map[string]any{
		Health.String(): p.Get(Health),
		Mana.String():   p.Get(Mana),
		Gold.String():   p.Get(Gold),
	}
}

// Summary formats the resources and score for the end of a run.
func (p *Player) Summary() string {
	return fmt.Sprintf("[HEALTH]: %d\n  [MANA]: %d\n  [GOLD]: %d\n> TOTAL SCORE: %d",
		p.Get(Health), p.Get(Mana), p.Get(Gold), p.Score())
}

// HasMinimum holds while the value behind h is at least amount.
// It is false without a registry or when h cannot be read.
func HasMinimum(h values.Handle[int], amount int) domain.Condition {
	return domain.ConditionFunc(func(reg *values.Registry) bool {
		if reg == nil {
			return false
		}
		v, err := values.Get(reg, h)
		return err == nil && v >= amount
	})
}

// Modify adds delta to the value behind h, never going below 0.
func Modify(h values.Handle[int], delta int) domain.Action {
	return domain.ActionFunc(func(reg *values.Registry) {
		if reg == nil {
			return
		}
		_ = values.Update(reg, h, func(v int) int { return max(0, v+delta) })
	})
}
