package ids_test

import (
	"sync"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrRegister(t *testing.T) {
	reg := ids.New[string]()

	a := reg.GetOrRegister("MSG_A_1")
	b := reg.GetOrRegister("MSG_A_2")
	again := reg.GetOrRegister("MSG_A_1")

	assert.Equal(t, domain.NodeID(0), a)
	assert.Equal(t, domain.NodeID(1), b)
	assert.Equal(t, a, again, "registration is idempotent")
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Register(t *testing.T) {
	reg := ids.New[string]()

	id, err := reg.Register("intro")
	require.NoError(t, err)

	dup, err := reg.Register("intro")
	assert.ErrorIs(t, err, ids.ErrDuplicateID)
	assert.Equal(t, id, dup)
	assert.Equal(t, 1, reg.Len(), "failed registration mints nothing")
}

func TestRegistry_Lookups(t *testing.T) {
	type scene int
	const (
		intro scene = iota
		cavern
	)
	reg := ids.New[scene]()
	introID := reg.GetOrRegister(intro)

	got, err := reg.InternalID(intro)
	require.NoError(t, err)
	assert.Equal(t, introID, got)

	ext, err := reg.ExternalID(introID)
	require.NoError(t, err)
	assert.Equal(t, intro, ext)

	_, err = reg.InternalID(cavern)
	assert.ErrorIs(t, err, ids.ErrNotFound)
	_, ok := reg.Lookup(cavern)
	assert.False(t, ok)

	_, err = reg.ExternalID(42)
	assert.ErrorIs(t, err, ids.ErrNotFound)
	_, ok = reg.LookupExternal(42)
	assert.False(t, ok)
}

func TestRegistry_ExternalIDsAndLabel(t *testing.T) {
	reg := ids.New[string]()
	reg.GetOrRegister("b")
	reg.GetOrRegister("a")

	assert.Equal(t, []string{"b", "a"}, reg.ExternalIDs())
	assert.Equal(t, "a", reg.Label(1))
	assert.Equal(t, "#9", reg.Label(9))
}

func TestRegistry_ConcurrentGetOrRegister(t *testing.T) {
	reg := ids.New[string]()
	keys := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	results := make([][]domain.NodeID, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, k := range keys {
				results[i] = append(results[i], reg.GetOrRegister(k))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(keys), reg.Len(), "each key minted exactly once")
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}

	// Mappings must be mutual inverses.
	for _, k := range keys {
		id, ok := reg.Lookup(k)
		require.True(t, ok)
		back, ok := reg.LookupExternal(id)
		require.True(t, ok)
		assert.Equal(t, k, back)
	}
}
