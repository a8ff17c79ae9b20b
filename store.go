package tessera

import (
	"fmt"

	"github.com/tessera-engine/tessera/types"
)

// accessGuard is the runtime stand-in for a static borrow checker: any number
// of concurrent readers, or exactly one writer, per store. Violations are
// programming errors and fail fast with a panic rather than silently
// corrupting iteration state.
type accessGuard struct {
	readers int
	writing bool
}

func (g *accessGuard) acquireRead(storeName string) {
	if g.writing {
		panic(fmt.Sprintf(
			"store %q: read access requested while an exclusive (QueryMut) access is live", storeName))
	}
	g.readers++
}

func (g *accessGuard) releaseRead() {
	g.readers--
}

func (g *accessGuard) acquireWrite(storeName string) {
	if g.writing {
		panic(fmt.Sprintf(
			"store %q: exclusive access requested while another exclusive access is live", storeName))
	}
	if g.readers > 0 {
		panic(fmt.Sprintf(
			"store %q: exclusive access requested while %d read accesses are live", storeName, g.readers))
	}
	g.writing = true
}

func (g *accessGuard) releaseWrite() {
	g.writing = false
}

// storage is the untyped face of a component store, used where the world has
// to treat all stores uniformly (cascade destroy, logging).
type storage interface {
	ComponentID() types.ComponentID
	ComponentName() string
	Len() int
	Has(id types.EntityID) bool
	// Discard removes the entity's component without reporting the value.
	Discard(id types.EntityID) bool
	guard() *accessGuard
}

// store is a sparse-set table of entity id -> component value for one
// component type. The dense slices keep iteration order stable between
// structural changes, which is what makes query order deterministic per call.
type store[T types.Component] struct {
	id     types.ComponentID
	name   string
	dense  []types.EntityID
	values []T
	sparse map[types.EntityID]int
	access accessGuard
}

func newStore[T types.Component]() *store[T] {
	var zero T
	name := zero.Name()
	return &store[T]{
		id:     types.ComponentIDOf(name),
		name:   name,
		sparse: make(map[types.EntityID]int),
	}
}

func (s *store[T]) ComponentID() types.ComponentID { return s.id }
func (s *store[T]) ComponentName() string          { return s.name }
func (s *store[T]) Len() int                       { return len(s.dense) }
func (s *store[T]) guard() *accessGuard            { return &s.access }

func (s *store[T]) Has(id types.EntityID) bool {
	_, ok := s.sparse[id]
	return ok
}

// set attaches or replaces the entity's component value.
func (s *store[T]) set(id types.EntityID, value T) {
	s.access.acquireWrite(s.name)
	defer s.access.releaseWrite()

	if i, ok := s.sparse[id]; ok {
		s.values[i] = value
		return
	}
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, id)
	s.values = append(s.values, value)
}

func (s *store[T]) get(id types.EntityID) (T, bool) {
	s.access.acquireRead(s.name)
	defer s.access.releaseRead()

	i, ok := s.sparse[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// mutate applies fn to the entity's component in place.
func (s *store[T]) mutate(id types.EntityID, fn func(*T)) bool {
	s.access.acquireWrite(s.name)
	defer s.access.releaseWrite()

	i, ok := s.sparse[id]
	if !ok {
		return false
	}
	fn(&s.values[i])
	return true
}

// remove detaches and returns the entity's component. Removal swaps the last
// dense entry into the hole, so it is constant time at the cost of iteration
// order changing across structural mutations.
func (s *store[T]) remove(id types.EntityID) (T, bool) {
	s.access.acquireWrite(s.name)
	defer s.access.releaseWrite()

	i, ok := s.sparse[id]
	if !ok {
		var zero T
		return zero, false
	}
	removed := s.values[i]

	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.values[i] = s.values[last]
		s.sparse[s.dense[i]] = i
	}
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.sparse, id)
	return removed, true
}

func (s *store[T]) Discard(id types.EntityID) bool {
	_, ok := s.remove(id)
	return ok
}
