package tessera

import (
	"github.com/tessera-engine/tessera/types"
)

// Typed component accessors. All of them are constant time. Absence of a
// component is an ordinary result, never an error; an unregistered component
// type is a programming error and panics (see mustStoreFor).

// AddComponent attaches the component value to the entity, replacing any
// previous value of the same type. The entity does not have to be live:
// stores key rows by id alone, existence is the registry's concern.
func AddComponent[T types.Component](w *World, id types.EntityID, value T) {
	s := mustStoreFor[T](w)
	s.set(id, value)

	w.Logger().Debug().
		Uint64("entity_id", uint64(id)).
		Str("component_name", s.ComponentName()).
		Msg("component set")
}

// GetComponent returns the entity's component value, or ok=false when the
// entity does not have one.
func GetComponent[T types.Component](w *World, id types.EntityID) (T, bool) {
	return mustStoreFor[T](w).get(id)
}

// MustGetComponent is GetComponent for call sites that have already
// established presence.
func MustGetComponent[T types.Component](w *World, id types.EntityID) T {
	value, ok := GetComponent[T](w, id)
	if !ok {
		var zero T
		logAndPanic(w, errNoComponent(id, zero.Name()))
	}
	return value
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T types.Component](w *World, id types.EntityID) bool {
	return mustStoreFor[T](w).Has(id)
}

// UpdateComponent mutates the entity's component in place and reports whether
// the component was present.
func UpdateComponent[T types.Component](w *World, id types.EntityID, fn func(*T)) bool {
	return mustStoreFor[T](w).mutate(id, fn)
}

// RemoveComponent detaches and returns the entity's component. Removal of an
// absent component is a no-op reported by ok=false.
func RemoveComponent[T types.Component](w *World, id types.EntityID) (T, bool) {
	return mustStoreFor[T](w).remove(id)
}
