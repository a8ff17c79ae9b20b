package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-engine/tessera/types"
)

func TestBodyKindRoundTrip(t *testing.T) {
	kinds := []types.BodyKind{
		types.BodyDynamic,
		types.BodyFixed,
		types.BodyKinematicPositionBased,
		types.BodyKinematicVelocityBased,
	}
	for _, kind := range kinds {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var parsed types.BodyKind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, kind, parsed)

		fromString, err := types.ParseBodyKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, fromString)
	}
}

func TestParseBodyKindRejectsUnknown(t *testing.T) {
	_, err := types.ParseBodyKind("Static")
	require.Error(t, err)

	var kind types.BodyKind
	require.Error(t, kind.UnmarshalText([]byte("dynamic")), "spelling is case sensitive")
}

func TestIsKinematic(t *testing.T) {
	assert.False(t, types.BodyDynamic.IsKinematic())
	assert.False(t, types.BodyFixed.IsKinematic())
	assert.True(t, types.BodyKinematicPositionBased.IsKinematic())
	assert.True(t, types.BodyKinematicVelocityBased.IsKinematic())
}

func TestVec2(t *testing.T) {
	a := types.Vec2{X: 3, Y: 4}
	assert.InDelta(t, 5, a.Length(), 1e-12)
	assert.Equal(t, types.Vec2{X: 4, Y: 6}, a.Add(types.Vec2{X: 1, Y: 2}))
	assert.Equal(t, types.Vec2{X: 2, Y: 2}, a.Sub(types.Vec2{X: 1, Y: 2}))
	assert.Equal(t, types.Vec2{X: 6, Y: 8}, a.Scale(2))
	assert.True(t, a.Near(types.Vec2{X: 3.0000001, Y: 4}, 1e-6))
	assert.False(t, a.Near(types.Vec2{X: 3.1, Y: 4}, 1e-6))
}
