// Package physics keeps ECS position/velocity state and an external
// rigid-body solver reconciled once per tick. The Bridge owns the solver
// instance and the entity<->body mapping; the direction of truth for each
// body is selected by its BodyKind.
package physics

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tessera-engine/tessera/types"
)

// DefaultMaxSubsteps bounds the continuous-collision sub-stepping for a
// single tick so a single degenerate body cannot stall the frame.
const DefaultMaxSubsteps = 8

// ComponentState is the slice of the world the Bridge reads and writes during
// Step. Setters report false when the entity does not track the component, in
// which case the write is skipped; the Bridge never attaches components.
type ComponentState interface {
	Position(id types.EntityID) (types.Vec2, bool)
	SetPosition(id types.EntityID, pos types.Vec2) bool
	Velocity(id types.EntityID) (types.Vec2, bool)
	SetVelocity(id types.EntityID, vel types.Vec2) bool
}

// Contact is a pairwise collision between two physics-enabled entities,
// produced during Step and readable until the next Step.
type Contact struct {
	A types.EntityID
	B types.EntityID
}

type bodyRecord struct {
	handle   BodyHandle
	halfSize float64
	kind     types.BodyKind
}

// Bridge maintains exactly one solver body per physics-enabled entity.
//
// The handle map is a weak back-reference: it confers no ownership over the
// entity id (the registry owns that) and the body itself lives in the Engine.
type Bridge struct {
	engine      Engine
	logger      zerolog.Logger
	bodies      map[types.EntityID]bodyRecord
	byHandle    map[BodyHandle]types.EntityID
	order       []types.EntityID // deterministic iteration, insertion order
	contacts    []Contact
	maxSubsteps int
}

func NewBridge(engine Engine, logger zerolog.Logger, maxSubsteps int) *Bridge {
	if maxSubsteps < 1 {
		maxSubsteps = DefaultMaxSubsteps
	}
	return &Bridge{
		engine:      engine,
		logger:      logger.With().Str("module", "physics_bridge").Logger(),
		bodies:      make(map[types.EntityID]bodyRecord),
		byHandle:    make(map[BodyHandle]types.EntityID),
		order:       make([]types.EntityID, 0),
		maxSubsteps: maxSubsteps,
	}
}

// AddBody creates a solver body for the entity at pos. If the entity already
// has a body, the old handle is destroyed first and the new body takes its
// place; re-adding is how the editor resets a body's solver state.
func (b *Bridge) AddBody(id types.EntityID, pos types.Vec2, halfSize float64, kind types.BodyKind) error {
	if halfSize <= 0 {
		return eris.Errorf("physics body for entity %d must have a positive half size, got %v", id, halfSize)
	}

	if old, ok := b.bodies[id]; ok {
		b.engine.DestroyBody(old.handle)
		delete(b.byHandle, old.handle)
	} else {
		b.order = append(b.order, id)
	}

	handle, err := b.engine.CreateBody(pos, halfSize, kind)
	if err != nil {
		b.removeFromOrder(id)
		delete(b.bodies, id)
		return eris.Wrapf(err, "failed to create body for entity %d", id)
	}

	b.bodies[id] = bodyRecord{handle: handle, halfSize: halfSize, kind: kind}
	b.byHandle[handle] = id

	b.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Uint64("body_handle", uint64(handle)).
		Str("body_kind", kind.String()).
		Msg("body created")
	return nil
}

// RemoveBody destroys the entity's body and mapping. Removing an unmapped
// entity is a no-op.
func (b *Bridge) RemoveBody(id types.EntityID) bool {
	rec, ok := b.bodies[id]
	if !ok {
		return false
	}
	b.engine.DestroyBody(rec.handle)
	delete(b.bodies, id)
	delete(b.byHandle, rec.handle)
	b.removeFromOrder(id)
	return true
}

func (b *Bridge) HasBody(id types.EntityID) bool {
	_, ok := b.bodies[id]
	return ok
}

// BodyKind returns the kind the entity's body was created with.
func (b *Bridge) BodyKind(id types.EntityID) (types.BodyKind, bool) {
	rec, ok := b.bodies[id]
	return rec.kind, ok
}

// BodyCount returns the number of mapped bodies.
func (b *Bridge) BodyCount() int {
	return len(b.bodies)
}

// SetBodyVelocity pushes a velocity straight into the entity's body, outside
// the regular per-tick synchronization. Unmapped entities are skipped.
func (b *Bridge) SetBodyVelocity(id types.EntityID, vel types.Vec2) bool {
	rec, ok := b.bodies[id]
	if !ok {
		return false
	}
	b.engine.SetVelocity(rec.handle, vel)
	return true
}

// Step reconciles ECS and solver state around one fixed-timestep advance:
//
//  1. kinematic bodies are pushed from ECS state (position-based from
//     Position, velocity-based from Velocity);
//  2. the solver advances by dt, sub-stepped so that no body travels farther
//     than its own half extent per substep (continuous collision detection);
//  3. dynamic and velocity-based kinematic bodies write their resulting
//     transform back into ECS state, so Position mirrors the simulated body
//     after every tick; dynamic bodies also write back their velocity when
//     the entity tracks one;
//  4. contacts begun during the step are collected for Contacts().
//
// Entities whose handles the solver no longer recognizes are stale; they are
// skipped and logged, never fatal.
func (b *Bridge) Step(state ComponentState, dt float64) {
	if dt <= 0 {
		return
	}

	for _, id := range b.order {
		rec := b.bodies[id]
		switch rec.kind {
		case types.BodyKinematicPositionBased:
			if pos, ok := state.Position(id); ok {
				b.engine.SetTransform(rec.handle, pos)
			}
		case types.BodyKinematicVelocityBased:
			if vel, ok := state.Velocity(id); ok {
				b.engine.SetVelocity(rec.handle, vel)
			}
		}
	}

	b.advance(dt)

	for _, id := range b.order {
		rec := b.bodies[id]
		// Fixed bodies never move and position-based kinematic bodies treat
		// the ECS Position as authoritative; everything else moved during the
		// step and must mirror its transform back.
		if rec.kind == types.BodyFixed || rec.kind == types.BodyKinematicPositionBased {
			continue
		}
		pos, ok := b.engine.Transform(rec.handle)
		if !ok {
			b.logger.Debug().
				Uint64("entity_id", uint64(id)).
				Uint64("body_handle", uint64(rec.handle)).
				Msg("skipping stale body handle")
			continue
		}
		state.SetPosition(id, pos)
		if rec.kind != types.BodyDynamic {
			continue
		}
		if vel, ok := b.engine.Velocity(rec.handle); ok {
			state.SetVelocity(id, vel)
		}
	}
}

// advance runs the sub-stepped solver advance and refreshes the contact list.
func (b *Bridge) advance(dt float64) {
	steps := b.substeps(dt)
	subDt := dt / float64(steps)

	b.contacts = b.contacts[:0]
	seen := make(map[Contact]struct{})
	for i := 0; i < steps; i++ {
		for _, ev := range b.engine.Step(subDt) {
			a, okA := b.byHandle[ev.A]
			c, okB := b.byHandle[ev.B]
			if !okA || !okB {
				// One side was removed mid-tick; treat as already cleaned up.
				continue
			}
			if c < a {
				a, c = c, a
			}
			contact := Contact{A: a, B: c}
			if _, dup := seen[contact]; dup {
				continue
			}
			seen[contact] = struct{}{}
			b.contacts = append(b.contacts, contact)
		}
	}
}

// substeps picks the smallest substep count such that no body moves farther
// than its own half extent within one substep. Fast, thin bodies would
// otherwise tunnel through colliders between steps.
func (b *Bridge) substeps(dt float64) int {
	steps := 1
	for _, id := range b.order {
		rec := b.bodies[id]
		if rec.kind == types.BodyFixed || rec.kind == types.BodyKinematicPositionBased {
			continue
		}
		vel, ok := b.engine.Velocity(rec.handle)
		if !ok {
			continue
		}
		travel := vel.Length() * dt
		if travel <= rec.halfSize {
			continue
		}
		need := int(math.Ceil(travel / rec.halfSize))
		if need > steps {
			steps = need
		}
	}
	if steps > b.maxSubsteps {
		steps = b.maxSubsteps
	}
	return steps
}

// Contacts returns the contacts produced by the most recent Step. The slice
// is owned by the Bridge and must be treated as read-only; it is overwritten
// by the next Step.
func (b *Bridge) Contacts() []Contact {
	return b.contacts
}

func (b *Bridge) removeFromOrder(id types.EntityID) {
	for i, e := range b.order {
		if e == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			return
		}
	}
}
