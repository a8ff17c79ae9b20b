// Package scene reads and writes scene files and spawns their entities into
// a world through the world's public mutation API. The on-disk format is
// JSON or YAML, chosen by file extension; the core never parses scenes during
// a tick, loading happens outside the tick boundary.
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/tessera-engine/tessera"
	"github.com/tessera-engine/tessera/types"
)

// BodyRecord is the serialized physics-body descriptor of an entity.
type BodyRecord struct {
	HalfSize float64 `json:"half_size" yaml:"half_size"`
	Kind     string  `json:"kind" yaml:"kind"`
}

// EntityRecord is one entity's serialized component set. Every field except
// Name is optional; absent components are simply not attached.
type EntityRecord struct {
	Name     string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Position *tessera.Position      `json:"position,omitempty" yaml:"position,omitempty"`
	Velocity *tessera.Velocity      `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Flat     *tessera.Sprite        `json:"sprite,omitempty" yaml:"sprite,omitempty"`
	Sprite   *tessera.TextureSprite `json:"texture_sprite,omitempty" yaml:"texture_sprite,omitempty"`
	Body     *BodyRecord            `json:"physics_body,omitempty" yaml:"physics_body,omitempty"`
}

// Scene is a named collection of entity records.
type Scene struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Entities    []EntityRecord `json:"entities" yaml:"entities"`
}

// Load reads a scene file, decoding JSON for .json and YAML for .yaml/.yml.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read scene file %q", path)
	}

	var s Scene
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, eris.Wrapf(err, "failed to decode scene file %q", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, eris.Wrapf(err, "failed to decode scene file %q", path)
		}
	default:
		return nil, eris.Errorf("scene file %q has unsupported extension %q", path, ext)
	}
	return &s, nil
}

// Save writes the scene in the format implied by the path's extension.
func Save(s *Scene, path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := filepath.Ext(path); ext {
	case ".json":
		data, err = json.MarshalIndent(s, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		return eris.Errorf("scene file %q has unsupported extension %q", path, ext)
	}
	if err != nil {
		return eris.Wrapf(err, "failed to encode scene %q", s.Name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "failed to write scene file %q", path)
	}
	return nil
}

// Spawn creates every entity in the scene and returns a mapping from entity
// name to the allocated id. Records without a name are keyed "entity_<index>".
// A record with a physics body uses its position (or the origin) as the
// body's initial transform.
func Spawn(s *Scene, w *tessera.World) (map[string]types.EntityID, error) {
	entityMap := make(map[string]types.EntityID, len(s.Entities))

	for index, record := range s.Entities {
		id := w.CreateEntity()

		if record.Position != nil {
			tessera.AddComponent(w, id, *record.Position)
		}
		if record.Velocity != nil {
			tessera.AddComponent(w, id, *record.Velocity)
		}
		if record.Flat != nil {
			tessera.AddComponent(w, id, *record.Flat)
		}
		if record.Sprite != nil {
			tessera.AddComponent(w, id, *record.Sprite)
		}
		if record.Body != nil {
			kind, err := types.ParseBodyKind(record.Body.Kind)
			if err != nil {
				return nil, eris.Wrapf(err, "entity %d in scene %q", index, s.Name)
			}
			pos := types.Vec2{}
			if record.Position != nil {
				pos = record.Position.Vec2()
			}
			if err := w.AddPhysicsBody(id, pos, record.Body.HalfSize, kind); err != nil {
				return nil, eris.Wrapf(err, "entity %d in scene %q", index, s.Name)
			}
		}

		name := record.Name
		if name == "" {
			name = fmt.Sprintf("entity_%d", index)
		}
		entityMap[name] = id
	}

	w.Logger().Info().
		Str("scene", s.Name).
		Int("entities", len(s.Entities)).
		Msg("scene spawned")
	return entityMap, nil
}

// Capture rebuilds a scene from live world state using read queries. Entity
// names are not stored in the world, so records are keyed "entity_<id>".
func Capture(w *tessera.World, name, description string) *Scene {
	byEntity := make(map[types.EntityID]*EntityRecord)
	record := func(id types.EntityID) *EntityRecord {
		r, ok := byEntity[id]
		if !ok {
			r = &EntityRecord{Name: fmt.Sprintf("entity_%d", id)}
			byEntity[id] = r
		}
		return r
	}

	tessera.NewQuery[tessera.Position](w).Each(func(id types.EntityID, pos tessera.Position) bool {
		p := pos
		record(id).Position = &p
		return true
	})
	tessera.NewQuery[tessera.Velocity](w).Each(func(id types.EntityID, vel tessera.Velocity) bool {
		v := vel
		record(id).Velocity = &v
		return true
	})
	tessera.NewQuery[tessera.Sprite](w).Each(func(id types.EntityID, flat tessera.Sprite) bool {
		f := flat
		record(id).Flat = &f
		return true
	})
	tessera.NewQuery[tessera.TextureSprite](w).Each(func(id types.EntityID, sprite tessera.TextureSprite) bool {
		s := sprite
		record(id).Sprite = &s
		return true
	})
	tessera.NewQuery[tessera.PhysicsBody](w).Each(func(id types.EntityID, body tessera.PhysicsBody) bool {
		record(id).Body = &BodyRecord{HalfSize: body.HalfSize, Kind: body.Kind.String()}
		return true
	})

	ids := make([]types.EntityID, 0, len(byEntity))
	for id := range byEntity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s := &Scene{
		Name:        name,
		Description: description,
		Entities:    make([]EntityRecord, 0, len(ids)),
	}
	for _, id := range ids {
		s.Entities = append(s.Entities, *byEntity[id])
	}
	return s
}
