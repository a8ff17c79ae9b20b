// Command example runs a small headless simulation: a couple of drifting
// crates, a fixed wall and a kinematic platform, ticked at the configured
// fixed timestep with the scene saved back to disk at the end.
package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tessera-engine/tessera"
	"github.com/tessera-engine/tessera/scene"
	"github.com/tessera-engine/tessera/types"
)

const ticks = 120

func main() {
	w, err := tessera.NewWorld()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create world")
	}
	defer w.Shutdown()

	if err := tessera.RegisterSystems(w,
		tessera.MovementSystem,
		tessera.VelocitySyncSystem,
		platformSystem,
	); err != nil {
		log.Fatal().Err(err).Msg("failed to register systems")
	}

	names, err := scene.Spawn(demoScene(), w)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to spawn scene")
	}

	if err := w.Play(); err != nil {
		log.Fatal().Err(err).Msg("failed to start playing")
	}

	dt := w.Config().FixedDT()
	for i := 0; i < ticks; i++ {
		if err := w.Tick(dt); err != nil {
			log.Fatal().Err(err).Uint64("tick", w.CurrentTick()).Msg("tick failed")
		}
		for _, contact := range w.Contacts() {
			w.Logger().Info().
				Uint64("entity_a", uint64(contact.A)).
				Uint64("entity_b", uint64(contact.B)).
				Uint64("tick", w.CurrentTick()).
				Msg("contact")
		}
	}

	for name, id := range names {
		if pos, ok := tessera.GetComponent[tessera.Position](w, id); ok {
			w.Logger().Info().
				Str("entity", name).
				Float64("x", pos.X).
				Float64("y", pos.Y).
				Msg("final position")
		}
	}

	out := filepath.Join(os.TempDir(), "tessera_demo.json")
	if err := scene.Save(scene.Capture(w, "demo_final", "state after the demo run"), out); err != nil {
		log.Fatal().Err(err).Msg("failed to save scene")
	}
	w.Logger().Info().Str("path", out).Msg("scene saved")
}

// platformSystem sweeps the kinematic platform back and forth across the
// play area by rewriting its Position every tick.
func platformSystem(ctx *tessera.Context) error {
	w := ctx.World()
	tessera.NewQueryMut2[tessera.Position, tessera.PhysicsBody](w).Each(
		func(id types.EntityID, pos *tessera.Position, body *tessera.PhysicsBody) bool {
			if body.Kind != types.BodyKinematicPositionBased {
				return true
			}
			pos.X += 30 * ctx.DT()
			if pos.X > 120 {
				pos.X = -120
			}
			return true
		})
	return nil
}

func demoScene() *scene.Scene {
	return &scene.Scene{
		Name:        "demo",
		Description: "drifting crates, a wall and a sweeping platform",
		Entities: []scene.EntityRecord{
			{
				Name:     "crate_left",
				Position: &tessera.Position{X: -80, Y: 0},
				Velocity: &tessera.Velocity{X: 40, Y: 0},
				Sprite:   &tessera.TextureSprite{AtlasName: "crate", Scale: 1},
				Body:     &scene.BodyRecord{HalfSize: 8, Kind: "Dynamic"},
			},
			{
				Name:     "crate_right",
				Position: &tessera.Position{X: 80, Y: 0},
				Velocity: &tessera.Velocity{X: -40, Y: 0},
				Sprite:   &tessera.TextureSprite{AtlasName: "crate", Scale: 1},
				Body:     &scene.BodyRecord{HalfSize: 8, Kind: "Dynamic"},
			},
			{
				Name:     "wall",
				Position: &tessera.Position{X: 0, Y: -60},
				Body:     &scene.BodyRecord{HalfSize: 32, Kind: "Fixed"},
			},
			{
				Name:     "platform",
				Position: &tessera.Position{X: -120, Y: 40},
				Body:     &scene.BodyRecord{HalfSize: 12, Kind: "KinematicPositionBased"},
			},
		},
	}
}
