// Package tessera is the runtime core of a 2D simulation engine: an
// entity-component-system world whose per-entity state lives in typed
// component stores, stays synchronized with an external rigid-body solver
// through a narrow bridge, and is read and mutated by systems through a
// deterministic per-tick scheduler and a guarded query layer.
//
// Rendering, asset loading and the editor GUI are collaborators on the far
// side of this package's API; none of them are implemented here.
package tessera

// RegisterSystems appends systems to the world's execution order. Systems run
// once per tick, strictly in registration order. Registration is only allowed
// while the world is in its Init stage.
func RegisterSystems(w *World, systems ...System) error {
	if err := w.requireInitStage("register systems"); err != nil {
		return err
	}
	return w.systemManager.RegisterSystems(systems...)
}

// SystemNames returns the registered system names in execution order.
func (w *World) SystemNames() []string {
	return w.systemManager.GetSystemNames()
}

// CurrentSystem returns the name of the system currently running, or
// "no_system" outside a tick.
func (w *World) CurrentSystem() string {
	return w.systemManager.GetCurrentSystem()
}

// RegisteredComponents returns descriptions of every registered component
// type, sorted by name.
func (w *World) RegisteredComponents() []string {
	infos := w.components.registeredComponents()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
