package types

import "github.com/cespare/xxhash/v2"

// ComponentID is the stable identifier of a component type. It is derived
// from the component name rather than registration order, so adding a new
// component type never shifts the IDs of existing ones.
type ComponentID uint64

// Component is the interface that the user needs to implement to create a new
// component type. Name must be unique across all registered component types.
type Component interface {
	Name() string
}

// ComponentIDOf computes the ComponentID for a component name.
func ComponentIDOf(name string) ComponentID {
	return ComponentID(xxhash.Sum64String(name))
}

// ComponentInfo is a lightweight description of a registered component type,
// used for logging and introspection.
type ComponentInfo struct {
	ID   ComponentID
	Name string
}
