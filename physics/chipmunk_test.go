package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-engine/tessera/types"
)

func TestChipmunkDynamicBodyIntegratesVelocity(t *testing.T) {
	engine := NewChipmunkEngine(ChipmunkConfig{})

	handle, err := engine.CreateBody(types.Vec2{X: 0, Y: 0}, 16, types.BodyDynamic)
	require.NoError(t, err)
	engine.SetVelocity(handle, types.Vec2{X: 10, Y: 0})

	for i := 0; i < 60; i++ {
		engine.Step(1.0 / 60.0)
	}

	pos, ok := engine.Transform(handle)
	require.True(t, ok)
	assert.InDelta(t, 10, pos.X, 1e-6, "zero gravity, constant velocity: x advances v*t")
	assert.InDelta(t, 0, pos.Y, 1e-6)
}

func TestChipmunkDynamicBodyAtRestStaysPut(t *testing.T) {
	engine := NewChipmunkEngine(ChipmunkConfig{})

	handle, err := engine.CreateBody(types.Vec2{X: 3, Y: 4}, 8, types.BodyDynamic)
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		engine.Step(1.0 / 60.0)
	}

	pos, ok := engine.Transform(handle)
	require.True(t, ok)
	assert.True(t, pos.Near(types.Vec2{X: 3, Y: 4}, 1e-9))
}

func TestChipmunkFixedBodyIgnoresVelocity(t *testing.T) {
	engine := NewChipmunkEngine(ChipmunkConfig{})

	handle, err := engine.CreateBody(types.Vec2{}, 16, types.BodyFixed)
	require.NoError(t, err)
	engine.SetVelocity(handle, types.Vec2{X: 100, Y: 100})

	for i := 0; i < 30; i++ {
		engine.Step(1.0 / 60.0)
	}

	pos, ok := engine.Transform(handle)
	require.True(t, ok)
	assert.True(t, pos.Near(types.Vec2{}, 1e-9))
}

func TestChipmunkDestroyedBodyIsUnknown(t *testing.T) {
	engine := NewChipmunkEngine(ChipmunkConfig{})

	handle, err := engine.CreateBody(types.Vec2{}, 16, types.BodyDynamic)
	require.NoError(t, err)
	engine.DestroyBody(handle)

	_, ok := engine.Transform(handle)
	assert.False(t, ok)
	_, ok = engine.Velocity(handle)
	assert.False(t, ok)

	// Destroying twice is harmless.
	engine.DestroyBody(handle)
}

func TestChipmunkReportsContactBetweenApproachingBodies(t *testing.T) {
	engine := NewChipmunkEngine(ChipmunkConfig{})

	// Two 32x32 boxes with surfaces 8 apart, closing at 960 units/s: they
	// overlap within a single 1/60s step.
	left, err := engine.CreateBody(types.Vec2{X: -20, Y: 0}, 16, types.BodyDynamic)
	require.NoError(t, err)
	right, err := engine.CreateBody(types.Vec2{X: 20, Y: 0}, 16, types.BodyDynamic)
	require.NoError(t, err)

	engine.SetVelocity(left, types.Vec2{X: 480, Y: 0})
	engine.SetVelocity(right, types.Vec2{X: -480, Y: 0})

	var contacts []ContactEvent
	for i := 0; i < 5 && len(contacts) == 0; i++ {
		contacts = append(contacts, engine.Step(1.0/60.0)...)
	}

	require.NotEmpty(t, contacts, "approaching bodies must register a contact")
	got := contacts[0]
	assert.ElementsMatch(t,
		[]BodyHandle{left, right},
		[]BodyHandle{got.A, got.B})
}
