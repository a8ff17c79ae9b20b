package tessera

import "github.com/tessera-engine/tessera/types"

// entityRegistry allocates entity ids and tracks liveness. It owns no
// component data; stores key their rows by id alone.
//
// Ids increase monotonically and are never reused within a world lifetime, so
// a handle kept across a destroy can never silently point at a newer entity.
type entityRegistry struct {
	next types.EntityID
	live map[types.EntityID]struct{}
}

func newEntityRegistry() *entityRegistry {
	return &entityRegistry{
		live: make(map[types.EntityID]struct{}),
	}
}

func (r *entityRegistry) create() types.EntityID {
	r.next++
	r.live[r.next] = struct{}{}
	return r.next
}

func (r *entityRegistry) isLive(id types.EntityID) bool {
	_, ok := r.live[id]
	return ok
}

// remove reports whether the entity was live. Removing an unknown id is a
// no-op.
func (r *entityRegistry) remove(id types.EntityID) bool {
	if _, ok := r.live[id]; !ok {
		return false
	}
	delete(r.live, id)
	return true
}

func (r *entityRegistry) count() int {
	return len(r.live)
}
