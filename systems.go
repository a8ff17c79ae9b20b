package tessera

import "github.com/tessera-engine/tessera/types"

// Built-in systems. Neither is registered by default; wire them with
// RegisterSystems in the order the simulation needs.

// MovementSystem integrates Position from Velocity for every entity that has
// both. Physics-driven entities get their Position overwritten by the bridge
// afterwards, so registering it is only meaningful for purely ECS-driven
// movement.
func MovementSystem(ctx *Context) error {
	dt := ctx.DT()
	NewQueryMut2[Position, Velocity](ctx.World()).Each(
		func(_ types.EntityID, pos *Position, vel *Velocity) bool {
			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
			return true
		})
	return nil
}

// VelocitySyncSystem pushes each entity's Velocity component into its mapped
// physics body so bodies keep moving without external forces or input.
// Entities without a body are skipped.
func VelocitySyncSystem(ctx *Context) error {
	world := ctx.World()
	bridge := world.Physics()
	NewQuery[Velocity](world).Each(func(id types.EntityID, vel Velocity) bool {
		bridge.SetBodyVelocity(id, vel.Vec2())
		return true
	})
	return nil
}
