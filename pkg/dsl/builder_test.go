package dsl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
	"github.com/aretw0/parley/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := dsl.New[string, string, string]()

	// Targets may be referenced before they are defined.
	b.Linear("start", "Hello, DSL!", "fork", "Continue")
	b.Node("fork", "Which way?").
		Choice("left", "Left").
		Choice("right", "Right").
		Done()
	b.Terminal("left", "Left it is.", "Finish")
	b.Terminal("right", "Right it is.", "")

	d, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 4, d.Graph().Len())

	startID, err := d.ID("start")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeID(0), startID)
	assert.Equal(t, "fork", d.Label(1))

	fork, err := d.ID("fork")
	require.NoError(t, err)
	node, ok := d.Graph().Get(fork)
	require.True(t, ok)
	assert.Equal(t, "Which way?", node.Content())
	require.Equal(t, 2, node.Len())

	right, _ := node.Choice(1)
	target, ok := right.Target().Node()
	require.True(t, ok)
	assert.Equal(t, "right", d.Label(target))

	r, err := d.Runner(values.New(), "start")
	require.NoError(t, err)
	cont, err := r.ChooseIndex(0)
	require.NoError(t, err)
	assert.True(t, cont)
}

func TestBuilder_ChoiceOptions(t *testing.T) {
	reg := values.New()
	coins := values.MustRegister(reg, "coins", 1)

	var order []string
	record := func(name string) domain.Action {
		return domain.ActionFunc(func(*values.Registry) { order = append(order, name) })
	}
	atLeast := func(n int) domain.Condition {
		return domain.ConditionFunc(func(reg *values.Registry) bool {
			v, err := values.Get(reg, coins)
			return err == nil && v >= n
		})
	}

	b := dsl.New[string, string, string]()
	b.Node("shop", "A tiny shop.").
		End("Buy", dsl.When(atLeast(1)), dsl.When(atLeast(2)), dsl.Then(record("pay")), dsl.Then(record("take"))).
		End("Leave", dsl.When(nil), dsl.Then(nil)).
		Done()

	r, err := b.BuildRunner(reg, "shop")
	require.NoError(t, err)

	choices := r.AllChoices()
	require.Len(t, choices, 2)
	_, hasCond := choices[1].Condition()
	_, hasAct := choices[1].Action()
	assert.False(t, hasCond)
	assert.False(t, hasAct)

	// Both guards must hold.
	assert.Len(t, r.AvailableChoices(), 1)
	require.NoError(t, values.Set(reg, coins, 2))
	require.Len(t, r.AvailableChoices(), 2)

	_, err = r.Choose(choices[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"pay", "take"}, order)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("dangling targets by name", func(t *testing.T) {
		b := dsl.New[string, string, string]()
		b.Linear("a", "A", "ghost", "go")
		b.Node("b", "B").Choice("phantom", "x").Choice("ghost", "y").Done()

		_, err := b.Build()
		require.ErrorIs(t, err, domain.ErrDanglingTargets)
		assert.Contains(t, err.Error(), "ghost, phantom")
	})

	t.Run("empty node and duplicate are both reported", func(t *testing.T) {
		b := dsl.New[string, string, string]()
		b.Terminal("a", "A", "end")
		b.Terminal("a", "A again", "end")
		b.Node("empty", "nothing").Done()

		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrDuplicateNodeID)
		assert.ErrorIs(t, err, domain.ErrEmptyChoiceList)
	})

	t.Run("unfinished node", func(t *testing.T) {
		b := dsl.New[string, string, string]()
		b.Terminal("a", "A", "end")
		b.Node("b", "B").End("end")

		_, err := b.Build()
		assert.ErrorContains(t, err, "never finalized")
	})

	t.Run("nothing authored", func(t *testing.T) {
		_, err := dsl.New[string, string, string]().Build()
		assert.ErrorIs(t, err, domain.ErrEmptyGraph)
	})

	t.Run("unknown start", func(t *testing.T) {
		b := dsl.New[string, string, string]()
		b.Terminal("a", "A", "end")
		_, err := b.BuildRunner(nil, "nowhere")
		assert.ErrorIs(t, err, domain.ErrUnknownStart)
	})
}

type room int

const (
	hall room = iota
	cellar
	attic
)

func TestBuilder_EnumIDsAndUnreachableWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug, logging.FormatText)

	b := dsl.New[room, string, string](dsl.WithLogger(logger))
	b.Linear(hall, "hall", cellar, "down")
	b.Terminal(cellar, "cellar", "stay")
	b.Linear(attic, "attic", hall, "down")

	d, err := b.Build()
	require.NoError(t, err)

	missing, err := d.Unreachable(hall)
	require.NoError(t, err)
	assert.Equal(t, []room{attic}, missing)

	_, err = d.Runner(nil, hall)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "node unreachable from start")
	assert.Contains(t, buf.String(), "node=2")
}
