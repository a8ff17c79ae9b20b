package scene_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-engine/tessera"
	"github.com/tessera-engine/tessera/scene"
	"github.com/tessera-engine/tessera/types"
)

func sampleScene() *scene.Scene {
	return &scene.Scene{
		Name:        "orbit",
		Description: "two drifting crates and a wall",
		Entities: []scene.EntityRecord{
			{
				Name:     "crate",
				Position: &tessera.Position{X: 10, Y: 20},
				Velocity: &tessera.Velocity{X: 5, Y: 0},
				Sprite:   &tessera.TextureSprite{AtlasName: "crate", Scale: 1},
				Body:     &scene.BodyRecord{HalfSize: 16, Kind: "Dynamic"},
			},
			{
				Name:     "wall",
				Position: &tessera.Position{X: 100, Y: 0},
				Body:     &scene.BodyRecord{HalfSize: 32, Kind: "Fixed"},
			},
			{
				// Unnamed, flat colored sprite only.
				Flat: &tessera.Sprite{Color: 0xFF00FF00, Size: 4},
			},
		},
	}
}

func TestSceneRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "orbit"+ext)
			original := sampleScene()

			require.NoError(t, scene.Save(original, path))
			loaded, err := scene.Load(path)
			require.NoError(t, err)
			assert.Equal(t, original, loaded)
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := scene.Load(filepath.Join(t.TempDir(), "orbit.toml"))
	require.Error(t, err)

	err = scene.Save(sampleScene(), filepath.Join(t.TempDir(), "orbit.toml"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := scene.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestSpawn(t *testing.T) {
	w, err := tessera.NewWorld()
	require.NoError(t, err)

	named, err := scene.Spawn(sampleScene(), w)
	require.NoError(t, err)
	require.Len(t, named, 3)

	crate := named["crate"]
	require.True(t, w.IsLive(crate))
	assert.Equal(t, tessera.Position{X: 10, Y: 20}, tessera.MustGetComponent[tessera.Position](w, crate))
	assert.Equal(t, tessera.Velocity{X: 5, Y: 0}, tessera.MustGetComponent[tessera.Velocity](w, crate))
	assert.Equal(t, tessera.PhysicsBody{HalfSize: 16, Kind: types.BodyDynamic},
		tessera.MustGetComponent[tessera.PhysicsBody](w, crate))
	assert.True(t, w.Physics().HasBody(crate))

	wall := named["wall"]
	body := tessera.MustGetComponent[tessera.PhysicsBody](w, wall)
	assert.Equal(t, types.BodyFixed, body.Kind)

	dot, ok := named["entity_2"]
	require.True(t, ok, "unnamed records get an index-based name")
	assert.Equal(t, tessera.Sprite{Color: 0xFF00FF00, Size: 4},
		tessera.MustGetComponent[tessera.Sprite](w, dot))
	assert.False(t, tessera.HasComponent[tessera.TextureSprite](w, dot))
	assert.False(t, w.Physics().HasBody(dot))
}

func TestSpawnRejectsBadBodyKind(t *testing.T) {
	w, err := tessera.NewWorld()
	require.NoError(t, err)

	s := &scene.Scene{
		Name: "broken",
		Entities: []scene.EntityRecord{
			{Name: "bad", Body: &scene.BodyRecord{HalfSize: 8, Kind: "Bouncy"}},
		},
	}
	_, err = scene.Spawn(s, w)
	require.Error(t, err)
}

func TestCaptureMirrorsSpawn(t *testing.T) {
	w, err := tessera.NewWorld()
	require.NoError(t, err)

	e := w.CreateEntity()
	tessera.AddComponent(w, e, tessera.Position{X: 1, Y: 2})
	tessera.AddComponent(w, e, tessera.Velocity{X: 3, Y: 4})
	tessera.AddComponent(w, e, tessera.Sprite{Color: 0xFF0000FF, Size: 2})
	require.NoError(t, w.AddPhysicsBody(e, types.Vec2{X: 1, Y: 2}, 8, types.BodyDynamic))

	captured := scene.Capture(w, "snapshot", "")
	require.Len(t, captured.Entities, 1)
	rec := captured.Entities[0]
	assert.Equal(t, &tessera.Position{X: 1, Y: 2}, rec.Position)
	assert.Equal(t, &tessera.Velocity{X: 3, Y: 4}, rec.Velocity)
	assert.Equal(t, &tessera.Sprite{Color: 0xFF0000FF, Size: 2}, rec.Flat)
	require.NotNil(t, rec.Body)
	assert.Equal(t, scene.BodyRecord{HalfSize: 8, Kind: "Dynamic"}, *rec.Body)

	// A captured scene spawns back into an equivalent world.
	w2, err := tessera.NewWorld()
	require.NoError(t, err)
	named, err := scene.Spawn(captured, w2)
	require.NoError(t, err)
	require.Len(t, named, 1)
	for _, id := range named {
		assert.Equal(t, tessera.Position{X: 1, Y: 2}, tessera.MustGetComponent[tessera.Position](w2, id))
		assert.True(t, w2.Physics().HasBody(id))
	}
}
