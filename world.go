package tessera

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tessera-engine/tessera/gamestage"
	"github.com/tessera-engine/tessera/physics"
	"github.com/tessera-engine/tessera/types"
)

// World composes the entity registry, one component store per registered
// component type, and the physics bridge. It is the sole mutation entry point
// for entities and components; scene loading, editor actions and gameplay
// systems all go through it.
//
// A world is single-threaded by contract: one system runs to completion
// before the next, and nothing blocks on I/O inside a tick.
type World struct {
	id     uuid.UUID
	config WorldConfig
	logger zerolog.Logger

	registry      *entityRegistry
	components    *componentManager
	systemManager *SystemManager
	stage         *gamestage.Manager

	engine physics.Engine
	bridge *physics.Bridge

	tick atomic.Uint64
}

// WorldOption augments how the world is built.
type WorldOption func(*World)

// WithPhysicsEngine substitutes the rigid-body solver behind the physics
// bridge. Tests use it to inject a scripted engine double.
func WithPhysicsEngine(engine physics.Engine) WorldOption {
	return func(w *World) {
		w.engine = engine
	}
}

// WithLogger replaces the config-derived logger.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates a world from the environment config, with the built-in
// component set (Position, Velocity, Sprite, TextureSprite, PhysicsBody) already
// registered. The world starts in the Init stage; register additional
// components and systems, then move it to Editing or Playing.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, err
	}

	w := &World{
		id:            uuid.New(),
		config:        *cfg,
		registry:      newEntityRegistry(),
		components:    newComponentManager(),
		systemManager: newSystemManager(),
		stage:         gamestage.NewManager(),
	}
	w.logger = newWorldLogger(cfg, w.id.String())

	for _, opt := range opts {
		opt(w)
	}

	if w.engine == nil {
		w.engine = physics.NewChipmunkEngine(physics.ChipmunkConfig{
			Gravity: types.Vec2{X: cfg.TesseraGravityX, Y: cfg.TesseraGravityY},
		})
	}
	w.bridge = physics.NewBridge(w.engine, w.logger, cfg.TesseraMaxSubsteps)

	for _, register := range []func(*World) error{
		RegisterComponent[Position],
		RegisterComponent[Velocity],
		RegisterComponent[Sprite],
		RegisterComponent[TextureSprite],
		RegisterComponent[PhysicsBody],
	} {
		if err := register(w); err != nil {
			return nil, err
		}
	}

	w.logger.Info().
		Str("mode", string(cfg.TesseraMode)).
		Int("tick_rate", cfg.TesseraTickRate).
		Msg("world created")
	return w, nil
}

func (w *World) Logger() *zerolog.Logger { return &w.logger }

// Config returns a copy of the world's configuration.
func (w *World) Config() WorldConfig { return w.config }

// CreateEntity allocates and returns a fresh entity id. It never fails.
func (w *World) CreateEntity() types.EntityID {
	id := w.registry.create()
	w.logger.Debug().Uint64("entity_id", uint64(id)).Msg("entity created")
	return id
}

// DestroyEntity removes the entity from every component store and, if
// present, destroys its physics body. Destroying an unknown or already
// destroyed id is a no-op; the call is idempotent.
func (w *World) DestroyEntity(id types.EntityID) {
	w.bridge.RemoveBody(id)
	w.components.discardAll(id)
	if w.registry.remove(id) {
		w.logger.Debug().Uint64("entity_id", uint64(id)).Msg("entity destroyed")
	}
}

// IsLive reports whether the entity has been created and not yet destroyed.
func (w *World) IsLive(id types.EntityID) bool {
	return w.registry.isLive(id)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.registry.count()
}

// AddPhysicsBody creates a solver body for the entity at pos with a square
// collider of the given half extent, records the entity<->handle mapping, and
// attaches the PhysicsBody component. A Position component is written if the
// entity has none, making pos authoritative as the body's initial transform.
//
// Calling it again for the same entity replaces the existing body; the old
// handle is destroyed first. The editor relies on this to reset a body's
// solver state.
func (w *World) AddPhysicsBody(id types.EntityID, pos types.Vec2, halfSize float64, kind types.BodyKind) error {
	if err := w.bridge.AddBody(id, pos, halfSize, kind); err != nil {
		// A failed replace may have already destroyed the old body. Keep the
		// PhysicsBody component in lockstep with the mapping either way.
		if !w.bridge.HasBody(id) {
			RemoveComponent[PhysicsBody](w, id)
		}
		return eris.Wrapf(err, "failed to add physics body to entity %d", id)
	}
	if !HasComponent[Position](w, id) {
		AddComponent(w, id, Position{X: pos.X, Y: pos.Y})
	}
	AddComponent(w, id, PhysicsBody{HalfSize: halfSize, Kind: kind})
	return nil
}

// RemovePhysicsBody destroys the entity's body and mapping and detaches the
// PhysicsBody component. The Position component, if present, keeps its last
// synchronized value. Removing an absent body is a no-op.
func (w *World) RemovePhysicsBody(id types.EntityID) bool {
	removed := w.bridge.RemoveBody(id)
	RemoveComponent[PhysicsBody](w, id)
	return removed
}

// Physics exposes the bridge for collaborators that need body-level access
// (the velocity sync system, editor property panels).
func (w *World) Physics() *physics.Bridge {
	return w.bridge
}

// Contacts returns the collision events produced by the most recent tick.
// The slice is read-only and overwritten by the next tick.
func (w *World) Contacts() []physics.Contact {
	return w.bridge.Contacts()
}

// Stage returns the current game stage.
func (w *World) Stage() gamestage.Stage {
	return w.stage.Current()
}

// StartEditing hands the world to the editor. The scheduler is never invoked
// while editing.
func (w *World) StartEditing() error {
	return w.transition("start editing", gamestage.Editing,
		gamestage.Init, gamestage.Playing, gamestage.Paused)
}

// Play starts (or resumes) the simulation. Resuming from Paused continues
// from the exact state the world paused in.
func (w *World) Play() error {
	if err := w.transition("play", gamestage.Playing,
		gamestage.Init, gamestage.Editing, gamestage.Paused); err != nil {
		return err
	}
	w.logWorldState(zerolog.InfoLevel)
	return nil
}

// Pause suspends the simulation without touching world state. A paused world
// skips ticks entirely; there is no in-progress cancellation.
func (w *World) Pause() error {
	return w.transition("pause", gamestage.Paused, gamestage.Playing)
}

// Shutdown marks the world as torn down.
func (w *World) Shutdown() {
	w.stage.Store(gamestage.ShutDown)
	w.logger.Info().Msg("world shut down")
}

func (w *World) transition(action string, to gamestage.Stage, from ...gamestage.Stage) error {
	for _, stage := range from {
		if w.stage.CompareAndSwap(stage, to) {
			w.logger.Info().
				Str("from", string(stage)).
				Str("to", string(to)).
				Msg("stage changed")
			return nil
		}
	}
	return eris.Errorf("cannot %s from stage %s", action, w.stage.Current())
}

func (w *World) requireInitStage(action string) error {
	if current := w.stage.Current(); current != gamestage.Init {
		return eris.Errorf("world stage is %s, expected %s to %s", current, gamestage.Init, action)
	}
	return nil
}

// Tick drives one full simulation step: every registered system strictly in
// registration order, then the physics bridge. Control never re-enters a
// system mid-step. Ticks only advance while the world is Playing; in Editing
// or Paused the call is a no-op, preserving exact state.
func (w *World) Tick(dt float64) error {
	if w.stage.Current() != gamestage.Playing {
		w.logger.Debug().
			Str("stage", string(w.stage.Current())).
			Msg("tick skipped, world is not playing")
		return nil
	}

	ctx := newContext(w, dt)
	if err := w.systemManager.RunSystems(ctx); err != nil {
		return err
	}
	w.bridge.Step(physicsState{w: w}, dt)

	w.tick.Add(1)
	return nil
}

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 {
	return w.tick.Load()
}

// physicsState adapts the world's Position/Velocity stores to the slice of
// state the physics bridge synchronizes. Setters only update components that
// already exist; the bridge never attaches new ones.
type physicsState struct {
	w *World
}

var _ physics.ComponentState = physicsState{}

func (s physicsState) Position(id types.EntityID) (types.Vec2, bool) {
	pos, ok := GetComponent[Position](s.w, id)
	return pos.Vec2(), ok
}

func (s physicsState) SetPosition(id types.EntityID, v types.Vec2) bool {
	return UpdateComponent(s.w, id, func(pos *Position) {
		pos.X = v.X
		pos.Y = v.Y
	})
}

func (s physicsState) Velocity(id types.EntityID) (types.Vec2, bool) {
	vel, ok := GetComponent[Velocity](s.w, id)
	return vel.Vec2(), ok
}

func (s physicsState) SetVelocity(id types.EntityID, v types.Vec2) bool {
	return UpdateComponent(s.w, id, func(vel *Velocity) {
		vel.X = v.X
		vel.Y = v.Y
	})
}
