package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/rotisserie/eris"

	"github.com/tessera-engine/tessera/types"
)

// Default collider material for every body.
const (
	boxElasticity = 0.8
	boxFriction   = 0.3
	boxMass       = 1.0
)

// All shapes share one collision type so a single handler observes every
// pairwise contact.
const bodyCollisionType = cp.CollisionType(1)

// ChipmunkConfig configures the Chipmunk-backed solver.
type ChipmunkConfig struct {
	Gravity types.Vec2
}

// ChipmunkEngine adapts a Chipmunk2D space (github.com/jakecoffman/cp) to the
// Engine interface. It is the only place in the module that touches the
// solver library.
//
// Bodies are configured to never auto-sleep so they stay eligible for
// collision response even at rest.
type ChipmunkEngine struct {
	space      *cp.Space
	nextHandle BodyHandle
	bodies     map[BodyHandle]*cp.Body
	shapes     map[BodyHandle]*cp.Shape
	contacts   []ContactEvent
}

var _ Engine = (*ChipmunkEngine)(nil)

func NewChipmunkEngine(cfg ChipmunkConfig) *ChipmunkEngine {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})
	space.SleepTimeThreshold = math.Inf(1)

	e := &ChipmunkEngine{
		space:  space,
		bodies: make(map[BodyHandle]*cp.Body),
		shapes: make(map[BodyHandle]*cp.Shape),
	}

	handler := space.NewCollisionHandler(bodyCollisionType, bodyCollisionType)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Bodies()
		ha, okA := a.UserData.(BodyHandle)
		hb, okB := b.UserData.(BodyHandle)
		if okA && okB {
			e.contacts = append(e.contacts, ContactEvent{A: ha, B: hb})
		}
		return true
	}

	return e
}

func (e *ChipmunkEngine) CreateBody(pos types.Vec2, halfSize float64, kind types.BodyKind) (BodyHandle, error) {
	size := halfSize * 2

	var body *cp.Body
	switch kind {
	case types.BodyDynamic:
		body = cp.NewBody(boxMass, cp.MomentForBox(boxMass, size, size))
	case types.BodyFixed:
		body = cp.NewStaticBody()
	case types.BodyKinematicPositionBased, types.BodyKinematicVelocityBased:
		body = cp.NewKinematicBody()
	default:
		return BadBodyHandle, eris.Errorf("unsupported body kind %q", kind)
	}

	e.nextHandle++
	handle := e.nextHandle

	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.UserData = handle
	e.space.AddBody(body)

	shape := cp.NewBox(body, size, size, 0)
	shape.SetElasticity(boxElasticity)
	shape.SetFriction(boxFriction)
	shape.SetCollisionType(bodyCollisionType)
	e.space.AddShape(shape)

	e.bodies[handle] = body
	e.shapes[handle] = shape
	return handle, nil
}

func (e *ChipmunkEngine) DestroyBody(handle BodyHandle) {
	body, ok := e.bodies[handle]
	if !ok {
		return
	}
	e.space.RemoveShape(e.shapes[handle])
	e.space.RemoveBody(body)
	delete(e.bodies, handle)
	delete(e.shapes, handle)
}

func (e *ChipmunkEngine) SetTransform(handle BodyHandle, pos types.Vec2) {
	if body, ok := e.bodies[handle]; ok {
		body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	}
}

func (e *ChipmunkEngine) Transform(handle BodyHandle) (types.Vec2, bool) {
	body, ok := e.bodies[handle]
	if !ok {
		return types.Vec2{}, false
	}
	pos := body.Position()
	return types.Vec2{X: pos.X, Y: pos.Y}, true
}

func (e *ChipmunkEngine) SetVelocity(handle BodyHandle, vel types.Vec2) {
	if body, ok := e.bodies[handle]; ok {
		body.SetVelocity(vel.X, vel.Y)
	}
}

func (e *ChipmunkEngine) Velocity(handle BodyHandle) (types.Vec2, bool) {
	body, ok := e.bodies[handle]
	if !ok {
		return types.Vec2{}, false
	}
	vel := body.Velocity()
	return types.Vec2{X: vel.X, Y: vel.Y}, true
}

func (e *ChipmunkEngine) Step(dt float64) []ContactEvent {
	e.contacts = e.contacts[:0]
	e.space.Step(dt)
	return e.contacts
}
