package story_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *story.Story {
	t.Helper()
	doc, err := story.Load(filepath.Join("testdata", "crossroads.yaml"))
	require.NoError(t, err)
	s, err := doc.Compile()
	require.NoError(t, err)
	return s
}

func TestLoad_Crossroads(t *testing.T) {
	s := load(t)
	assert.Equal(t, "The Crossroads", s.Title)
	assert.Equal(t, "a1", s.StartID())
	assert.Equal(t, 4, s.Dialogue().Graph().Len())
	assert.Empty(t, s.Unreachable())
	assert.Equal(t, map[string]any{"gold": 100, "lantern": false}, s.Snapshot())

	r, err := s.NewRunner()
	require.NoError(t, err)

	_, err = r.ChooseIndex(0)
	require.NoError(t, err)
	node, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "a2", s.Label(node.ID()))

	// Dark forest needs the lantern.
	assert.Len(t, r.AvailableChoices(), 2)
	_, err = r.ChooseIndex(1)
	require.ErrorIs(t, err, domain.ErrConditionNotMet)

	// Buying loops back and flips the offer.
	_, err = r.ChooseIndex(2)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"gold": 40, "lantern": true}, s.Snapshot())
	assert.Len(t, r.AvailableChoices(), 2)
	_, err = r.ChooseIndex(2)
	require.ErrorIs(t, err, domain.ErrConditionNotMet)

	_, err = r.ChooseIndex(1)
	require.NoError(t, err)
	cont, err := r.ChooseIndex(0)
	require.NoError(t, err)
	assert.False(t, cont)
	assert.True(t, r.IsCompleted())
}

func TestCompile_IndependentSessions(t *testing.T) {
	doc, err := story.Load(filepath.Join("testdata", "crossroads.yaml"))
	require.NoError(t, err)
	first, err := doc.Compile()
	require.NoError(t, err)
	second, err := doc.Compile()
	require.NoError(t, err)

	r, err := first.NewRunner()
	require.NoError(t, err)
	_, _ = r.ChooseIndex(0)
	_, err = r.ChooseIndex(2)
	require.NoError(t, err)

	assert.Equal(t, 40, first.Snapshot()["gold"])
	assert.Equal(t, 100, second.Snapshot()["gold"])
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not yaml", "nodes: [unclosed"},
		{"missing start", "nodes: [{id: a, choices: [{text: x}]}]"},
		{"no nodes", "start: a"},
		{"node without choices", "start: a\nnodes: [{id: a, text: hi}]"},
		{"node without id", "start: a\nnodes: [{text: hi, choices: [{text: x}]}]"},
		{"unknown key", "start: a\nnodes: [{id: a, choices: [{text: x, goto: b}]}]"},
		{"wrong type", "start: a\nnodes: [{id: a, choices: [{text: x, when: {min: {gold: lots}}}]}]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := story.Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, story.ErrInvalid)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	compile := func(t *testing.T, src string) error {
		t.Helper()
		doc, err := story.Parse([]byte(src))
		require.NoError(t, err)
		_, err = doc.Compile()
		return err
	}

	t.Run("dangling targets", func(t *testing.T) {
		err := compile(t, `
start: a
nodes:
  - id: a
    choices: [{text: x, to: nowhere}, {text: y, to: elsewhere}]
`)
		assert.ErrorIs(t, err, domain.ErrDanglingTargets)
		assert.ErrorContains(t, err, "nowhere, elsewhere")
	})

	t.Run("duplicate node", func(t *testing.T) {
		err := compile(t, `
start: a
nodes:
  - {id: a, choices: [{text: x}]}
  - {id: a, choices: [{text: y}]}
`)
		assert.ErrorIs(t, err, domain.ErrDuplicateNodeID)
	})

	t.Run("unknown start", func(t *testing.T) {
		err := compile(t, "start: z\nnodes: [{id: a, choices: [{text: x}]}]")
		assert.ErrorIs(t, err, domain.ErrUnknownStart)
	})

	t.Run("unknown value", func(t *testing.T) {
		err := compile(t, "start: a\nnodes: [{id: a, choices: [{text: x, when: {flags: [key]}}]}]")
		assert.ErrorIs(t, err, story.ErrUnknownValue)
	})

	t.Run("flag used as number", func(t *testing.T) {
		err := compile(t, "start: a\nvalues: {key: true}\nnodes: [{id: a, choices: [{text: x, do: {add: {key: 1}}}]}]")
		assert.ErrorIs(t, err, story.ErrValueKind)
	})

	t.Run("unsupported value", func(t *testing.T) {
		err := compile(t, "start: a\nvalues: {name: bob}\nnodes: [{id: a, choices: [{text: x}]}]")
		assert.ErrorIs(t, err, story.ErrValueKind)
	})
}
