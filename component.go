package tessera

import (
	"errors"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/tessera-engine/tessera/types"
)

var (
	ErrComponentNotRegistered     = errors.New("component type is not registered")
	ErrComponentAlreadyRegistered = errors.New("component type is already registered")
)

// componentManager tracks one store per registered component type.
type componentManager struct {
	stores map[types.ComponentID]storage
}

func newComponentManager() *componentManager {
	return &componentManager{
		stores: make(map[types.ComponentID]storage),
	}
}

func (m *componentManager) register(s storage) error {
	if _, ok := m.stores[s.ComponentID()]; ok {
		return eris.Wrapf(ErrComponentAlreadyRegistered, "component %q", s.ComponentName())
	}
	m.stores[s.ComponentID()] = s
	return nil
}

// registeredComponents returns component descriptions sorted by name, for
// logging and introspection.
func (m *componentManager) registeredComponents() []types.ComponentInfo {
	infos := make([]types.ComponentInfo, 0, len(m.stores))
	for _, s := range m.stores {
		infos = append(infos, types.ComponentInfo{ID: s.ComponentID(), Name: s.ComponentName()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// discardAll removes the entity from every store. It is the cascade half of
// DestroyEntity.
func (m *componentManager) discardAll(id types.EntityID) {
	for _, s := range m.stores {
		s.Discard(id)
	}
}

// RegisterComponent makes the component type T usable with the world's typed
// accessors and queries. Registration is only allowed while the world is in
// its init stage; component ids are name hashes, so registration order never
// matters.
func RegisterComponent[T types.Component](w *World) error {
	if err := w.requireInitStage("register component"); err != nil {
		return err
	}
	s := newStore[T]()
	if err := w.components.register(s); err != nil {
		return err
	}
	w.Logger().Debug().
		Str("component_name", s.ComponentName()).
		Uint64("component_id", uint64(s.ComponentID())).
		Msg("component registered")
	return nil
}

// storeFor resolves the store backing component type T.
func storeFor[T types.Component](w *World) (*store[T], error) {
	var zero T
	raw, ok := w.components.stores[types.ComponentIDOf(zero.Name())]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "component %q", zero.Name())
	}
	s, ok := raw.(*store[T])
	if !ok {
		return nil, eris.Errorf("component %q is registered with a different Go type", zero.Name())
	}
	return s, nil
}

// mustStoreFor is storeFor for call sites where an unregistered component is
// a programming error rather than a recoverable condition.
func mustStoreFor[T types.Component](w *World) *store[T] {
	s, err := storeFor[T](w)
	if err != nil {
		logAndPanic(w, err)
	}
	return s
}
