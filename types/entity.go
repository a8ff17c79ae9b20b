package types

// EntityID is the opaque identifier for a single simulated object. IDs are
// allocated monotonically by the world's registry and are never reused within
// one world lifetime, so a stale handle can never alias a newer entity.
type EntityID uint64

// BadEntityID is a sentinel value denoting no entity. The registry never
// issues it.
const BadEntityID = EntityID(0)
