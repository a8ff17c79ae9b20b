package tessera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-engine/tessera/types"
)

func TestStoreSetGetRemove(t *testing.T) {
	s := newStore[Position]()
	assert.Equal(t, "position", s.ComponentName())
	assert.Equal(t, types.ComponentIDOf("position"), s.ComponentID())

	s.set(1, Position{X: 1})
	s.set(2, Position{X: 2})
	s.set(3, Position{X: 3})
	require.Equal(t, 3, s.Len())

	got, ok := s.get(2)
	require.True(t, ok)
	assert.Equal(t, Position{X: 2}, got)

	// Replace keeps the dense slot.
	s.set(2, Position{X: 20})
	assert.Equal(t, 3, s.Len())
	got, _ = s.get(2)
	assert.Equal(t, Position{X: 20}, got)

	removed, ok := s.remove(2)
	require.True(t, ok)
	assert.Equal(t, Position{X: 20}, removed)
	assert.False(t, s.Has(2))
	assert.Equal(t, 2, s.Len())

	_, ok = s.remove(2)
	assert.False(t, ok)
}

func TestStoreSwapRemoveKeepsSparseConsistent(t *testing.T) {
	s := newStore[Position]()
	for i := types.EntityID(1); i <= 5; i++ {
		s.set(i, Position{X: float64(i)})
	}

	// Removing from the middle swaps the last entry into the hole.
	s.remove(2)
	assert.Equal(t, []types.EntityID{1, 5, 3, 4}, s.dense)
	for i, id := range s.dense {
		assert.Equal(t, i, s.sparse[id])
		assert.Equal(t, float64(id), s.values[i].X)
	}
}

func TestStoreMutate(t *testing.T) {
	s := newStore[Velocity]()
	s.set(7, Velocity{X: 1})

	ok := s.mutate(7, func(v *Velocity) { v.X = 99 })
	require.True(t, ok)
	got, _ := s.get(7)
	assert.Equal(t, Velocity{X: 99}, got)

	assert.False(t, s.mutate(8, func(*Velocity) {}))
}

func TestAccessGuard(t *testing.T) {
	var g accessGuard

	g.acquireRead("position")
	g.acquireRead("position")
	assert.Panics(t, func() { g.acquireWrite("position") })
	g.releaseRead()
	g.releaseRead()

	g.acquireWrite("position")
	assert.Panics(t, func() { g.acquireWrite("position") })
	assert.Panics(t, func() { g.acquireRead("position") })
	g.releaseWrite()

	assert.NotPanics(t, func() {
		g.acquireWrite("position")
		g.releaseWrite()
	})
}

func TestEntityRegistry(t *testing.T) {
	r := newEntityRegistry()

	a := r.create()
	b := r.create()
	assert.Equal(t, types.EntityID(1), a)
	assert.Equal(t, types.EntityID(2), b)
	assert.Equal(t, 2, r.count())

	assert.True(t, r.remove(a))
	assert.False(t, r.remove(a))
	assert.False(t, r.isLive(a))
	assert.True(t, r.isLive(b))

	c := r.create()
	assert.Equal(t, types.EntityID(3), c, "ids are never reused")
}

func TestComponentManagerRegistration(t *testing.T) {
	w, err := NewWorld()
	require.NoError(t, err)

	err = RegisterComponent[Position](w)
	require.ErrorIs(t, err, ErrComponentAlreadyRegistered, "built-ins are registered by NewWorld")

	names := w.RegisteredComponents()
	assert.Contains(t, names, "position")
	assert.Contains(t, names, "velocity")
	assert.Contains(t, names, "sprite")
	assert.Contains(t, names, "texture_sprite")
	assert.Contains(t, names, "physics_body")
	assert.IsNonDecreasing(t, names, "listing is sorted for stable logs")
}

func TestSpriteARGB(t *testing.T) {
	s := Sprite{Color: 0xFFFF8040, Size: 8}
	a, r, g, b := s.ARGB()
	assert.Equal(t, uint8(0xFF), a)
	assert.Equal(t, uint8(0xFF), r)
	assert.Equal(t, uint8(0x80), g)
	assert.Equal(t, uint8(0x40), b)
}
