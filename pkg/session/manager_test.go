package session_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/parley/internal/testutils"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T, hooks ...session.HookFunc) session.Factory {
	t.Helper()
	return session.FromDocument(testutils.Crossroads(t), hooks...)
}

func TestPlay_View(t *testing.T) {
	play, err := newFactory(t)()
	require.NoError(t, err)

	v := play.View()
	assert.Equal(t, "The Crossroads", v.Title)
	assert.Equal(t, "a1", v.Node)
	assert.Equal(t, "Welcome, traveler.", v.Content)
	assert.Equal(t, []session.ChoiceView{{Index: 0, Text: "Continue", Available: true, To: "a2"}}, v.Choices)
	assert.Equal(t, []string{"a1"}, v.Path)
	assert.Equal(t, map[string]any{"gold": 100, "lantern": false}, v.Values)

	v, err = play.Choose(0)
	require.NoError(t, err)
	assert.Equal(t, "a2", v.Node)
	require.Len(t, v.Choices, 3)
	assert.False(t, v.Choices[1].Available)
	assert.True(t, v.Choices[2].Available)

	_, err = play.Choose(1)
	assert.ErrorIs(t, err, domain.ErrConditionNotMet)
	_, err = play.Choose(7)
	assert.ErrorIs(t, err, domain.ErrForeignChoice)

	v, err = play.Choose(2)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"gold": 40, "lantern": true}, v.Values)
	assert.True(t, v.Choices[1].Available)

	v, err = play.Choose(1)
	require.NoError(t, err)
	assert.Equal(t, "c1", v.Node)
	assert.Equal(t, []session.ChoiceView{{Index: 0, Text: "Keep walking.", Available: true, Terminal: true}}, v.Choices)

	v, err = play.Choose(0)
	require.NoError(t, err)
	assert.True(t, v.Completed)
	assert.Empty(t, v.Node)
	assert.Empty(t, v.Choices)
	assert.Equal(t, []string{"a1", "a2", "a2", "c1"}, v.Path)

	_, err = play.Choose(0)
	assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)

	v = play.Reset()
	assert.Equal(t, "a1", v.Node)
	assert.False(t, v.Completed)
	assert.Equal(t, 40, v.Values["gold"])
}

func TestFromDocument_IndependentValues(t *testing.T) {
	factory := newFactory(t)
	first, err := factory()
	require.NoError(t, err)
	second, err := factory()
	require.NoError(t, err)

	_, err = first.Choose(0)
	require.NoError(t, err)
	_, err = first.Choose(2)
	require.NoError(t, err)

	assert.Equal(t, 40, first.View().Values["gold"])
	assert.Equal(t, 100, second.View().Values["gold"])
}

func TestFromDocument_Hooks(t *testing.T) {
	metrics, err := observability.NewMetrics(nil)
	require.NoError(t, err)

	play, err := newFactory(t, metrics.Hooks, nil)()
	require.NoError(t, err)
	_, err = play.Choose(0)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NodeVisits.WithLabelValues("a1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NodeVisits.WithLabelValues("a2")))
}

func TestManager_Lifecycle(t *testing.T) {
	n := 0
	m := session.NewManager(newFactory(t), session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}))

	id, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
	_, err = m.Create()
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, m.List())

	err = m.WithLock(id, func(p *session.Play) error {
		_, err := p.Choose(0)
		return err
	})
	require.NoError(t, err)

	var node string
	require.NoError(t, m.WithLock(id, func(p *session.Play) error {
		node = p.View().Node
		return nil
	}))
	assert.Equal(t, "a2", node)

	require.NoError(t, m.Delete(id))
	assert.ErrorIs(t, m.Delete(id), session.ErrSessionNotFound)
	assert.ErrorIs(t, m.WithLock(id, func(*session.Play) error { return nil }), session.ErrSessionNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestManager_WithLockReturnsCallbackError(t *testing.T) {
	m := session.NewManager(newFactory(t))
	id, err := m.Create()
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, m.WithLock(id, func(*session.Play) error { return boom }), boom)
}

func TestManager_Limit(t *testing.T) {
	m := session.NewManager(newFactory(t), session.WithLimit(1))
	_, err := m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	assert.ErrorIs(t, err, session.ErrLimitReached)
}

func TestManager_FactoryError(t *testing.T) {
	m := session.NewManager(func() (*session.Play, error) { return nil, errors.New("no story") })
	_, err := m.Create()
	assert.ErrorContains(t, err, "no story")
	assert.Zero(t, m.Len())
}

func TestManager_Prune(t *testing.T) {
	m := session.NewManager(newFactory(t))
	_, err := m.Create()
	require.NoError(t, err)

	assert.Zero(t, m.Prune(time.Now().Add(-time.Hour)))
	assert.Equal(t, 1, m.Prune(time.Now().Add(time.Second)))
	assert.Zero(t, m.Len())
}

func TestManager_Locking(t *testing.T) {
	m := session.NewManager(newFactory(t))
	id, err := m.Create()
	require.NoError(t, err)

	// Every goroutine resets and advances; interleaving would corrupt the path.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(id, func(p *session.Play) error {
				p.Reset()
				if _, err := p.Choose(0); err != nil {
					return err
				}
				_, err := p.Choose(0)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NoError(t, m.WithLock(id, func(p *session.Play) error {
		assert.Equal(t, []string{"a1", "a2", "b1"}, p.View().Path)
		return nil
	}))
}
