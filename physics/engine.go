package physics

import (
	"github.com/tessera-engine/tessera/types"
)

// BodyHandle identifies a rigid body inside an Engine. Handles are opaque to
// everything except the Engine that issued them; the Bridge only stores and
// compares them.
type BodyHandle uint64

// BadBodyHandle is never issued by an Engine.
const BadBodyHandle = BodyHandle(0)

// ContactEvent is a pairwise collision reported by the Engine for a single
// Step call. The handles are Engine-scoped; the Bridge translates them back
// into entity IDs.
type ContactEvent struct {
	A BodyHandle
	B BodyHandle
}

// Engine is the narrow interface the synchronization layer drives the
// external rigid-body solver through. The solver's collision and contact
// resolution math is an opaque capability behind it; the core never
// reimplements it.
//
// Transform and Velocity report ok=false for handles the engine no longer
// knows, which the Bridge treats as stale and skips.
type Engine interface {
	// CreateBody adds a square body with the given half extent at pos.
	CreateBody(pos types.Vec2, halfSize float64, kind types.BodyKind) (BodyHandle, error)
	DestroyBody(handle BodyHandle)

	SetTransform(handle BodyHandle, pos types.Vec2)
	Transform(handle BodyHandle) (types.Vec2, bool)

	SetVelocity(handle BodyHandle, vel types.Vec2)
	Velocity(handle BodyHandle) (types.Vec2, bool)

	// Step advances the simulation by dt and returns the contacts that began
	// during this step.
	Step(dt float64) []ContactEvent
}
