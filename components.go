package tessera

import "github.com/tessera-engine/tessera/types"

// The built-in component set. These are plain value types keyed solely by
// entity id inside their store; a component's presence is what gives an
// entity its behavioral capabilities (Position+Velocity => movable,
// PhysicsBody => participates in physics).

// Position is an entity's location in world space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (Position) Name() string { return "position" }

func (p Position) Vec2() types.Vec2 { return types.Vec2{X: p.X, Y: p.Y} }

// Velocity is an entity's linear velocity in world units per second.
type Velocity struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (Velocity) Name() string { return "velocity" }

func (v Velocity) Vec2() types.Vec2 { return types.Vec2{X: v.X, Y: v.Y} }

// Sprite is a flat colored square: a packed ARGB color and an edge length in
// pixels. Entities drawn from the texture atlas carry a TextureSprite instead.
type Sprite struct {
	Color uint32 `json:"color" yaml:"color"`
	Size  int    `json:"size" yaml:"size"`
}

func (Sprite) Name() string { return "sprite" }

// ARGB unpacks the color channels.
func (s Sprite) ARGB() (a, r, g, b uint8) {
	return uint8(s.Color >> 24), uint8(s.Color >> 16), uint8(s.Color >> 8), uint8(s.Color)
}

// TextureSprite points at a named region of the sprite atlas. The render
// system resolves the name; the core only stores it.
type TextureSprite struct {
	AtlasName string  `json:"atlas_name" yaml:"atlas_name"`
	Scale     float64 `json:"scale" yaml:"scale"`
}

func (TextureSprite) Name() string { return "texture_sprite" }

// PhysicsBody describes the solver body attached to an entity: a square
// collider of the given half extent and the kind that selects its
// synchronization direction. The component is attached by
// World.AddPhysicsBody and removed alongside the body.
type PhysicsBody struct {
	HalfSize float64        `json:"half_size" yaml:"half_size"`
	Kind     types.BodyKind `json:"kind" yaml:"kind"`
}

func (PhysicsBody) Name() string { return "physics_body" }
