package domain_test

import (
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget(t *testing.T) {
	to := domain.To(3)
	id, ok := to.Node()
	assert.True(t, ok)
	assert.Equal(t, domain.NodeID(3), id)
	assert.False(t, to.IsTerminal())
	assert.Equal(t, "#3", to.String())

	_, ok = domain.End.Node()
	assert.False(t, ok)
	assert.True(t, domain.End.IsTerminal())
	assert.Equal(t, "end", domain.End.String())
}

func TestNewNode(t *testing.T) {
	t.Run("empty choice list", func(t *testing.T) {
		_, err := domain.NewNode[string, string](0, "empty")
		assert.ErrorIs(t, err, domain.ErrEmptyChoiceList)
	})

	t.Run("nil choice", func(t *testing.T) {
		_, err := domain.NewNode[string, string](0, "broken", nil)
		assert.ErrorIs(t, err, domain.ErrNilChoice)
	})

	t.Run("identity", func(t *testing.T) {
		a := domain.NewChoice("Go", domain.To(1), nil, nil)
		b := domain.NewChoice("Go", domain.To(1), nil, nil)
		n, err := domain.NewNode(0, "start", a)
		require.NoError(t, err)

		assert.True(t, n.Owns(a))
		assert.False(t, n.Owns(b), "an equal-looking choice is not owned")
		assert.Equal(t, 0, n.IndexOf(a))
		assert.Equal(t, -1, n.IndexOf(nil))
	})

	t.Run("choices are copied", func(t *testing.T) {
		a := domain.NewChoice("A", domain.End, nil, nil)
		b := domain.NewChoice("B", domain.End, nil, nil)
		input := []*domain.Choice[string]{a, b}
		n, err := domain.NewNode(0, "start", input...)
		require.NoError(t, err)

		input[0] = b
		got := n.Choices()
		got[1] = a

		first, _ := n.Choice(0)
		second, _ := n.Choice(1)
		assert.Same(t, a, first)
		assert.Same(t, b, second)
		_, ok := n.Choice(2)
		assert.False(t, ok)
	})
}

func TestChoiceAccessors(t *testing.T) {
	plain := domain.NewChoice("Leave", domain.End, nil, nil)
	_, hasCond := plain.Condition()
	_, hasAct := plain.Action()
	assert.False(t, hasCond)
	assert.False(t, hasAct)
	assert.Equal(t, "Leave", plain.Content())
	assert.True(t, plain.Target().IsTerminal())

	cond := domain.ConditionFunc(func(*values.Registry) bool { return true })
	act := domain.ActionFunc(func(*values.Registry) {})
	gated := domain.NewChoice("Pay", domain.To(2), cond, act)
	_, hasCond = gated.Condition()
	_, hasAct = gated.Action()
	assert.True(t, hasCond)
	assert.True(t, hasAct)
}
