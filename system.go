package tessera

import (
	"path/filepath"
	"reflect"
	"runtime"
	"slices"

	"github.com/rotisserie/eris"
)

// System is a unit of per-tick logic. A system reads and mutates the world
// through its Context, commonly by issuing queries; it must not assume any
// other system's mutations are visible before its own turn except through the
// world itself.
type System func(ctx *Context) error

// SystemManager holds the registered systems in registration order, which is
// also the execution order within a tick.
type SystemManager struct {
	// registeredSystems is a list of all the registered system names in the order that they were registered.
	// This is represented as a list as maps in Go are unordered.
	registeredSystems []string

	// systemFn is a map of system names to system functions.
	systemFn map[string]System

	// currentSystem is the name of the system that is currently running.
	currentSystem *string
}

func newSystemManager() *SystemManager {
	return &SystemManager{
		registeredSystems: make([]string, 0),
		systemFn:          make(map[string]System),
		currentSystem:     nil,
	}
}

// RegisterSystems registers multiple systems with the system manager.
// There can only be one system with a given name, which is derived from the function name.
// If there is a duplicate system name, an error will be returned and none of the systems will be registered.
func (m *SystemManager) RegisterSystems(systems ...System) error {
	// Check all names before registering any of them to ensure all systems are
	// registered or none of them are.
	systemNames := make([]string, 0, len(systems))
	for _, system := range systems {
		// Obtain the name of the system function using reflection.
		systemName := filepath.Base(runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name())

		if slices.Contains(systemNames, systemName) {
			return eris.Errorf("duplicate system %q in slice", systemName)
		}
		if _, ok := m.systemFn[systemName]; ok {
			return eris.Errorf("system %q is already registered", systemName)
		}
		systemNames = append(systemNames, systemName)
	}

	for i, systemName := range systemNames {
		m.registeredSystems = append(m.registeredSystems, systemName)
		m.systemFn[systemName] = systems[i]
	}

	return nil
}

// RunSystems runs all the registered systems in the order that they were registered.
func (m *SystemManager) RunSystems(ctx *Context) error {
	for _, systemName := range m.registeredSystems {
		// Explicit memory aliasing
		sysName := systemName
		m.currentSystem = &sysName

		// Inject the system name into the context's logger
		ctx.setSystem(systemName)

		if err := m.systemFn[systemName](ctx); err != nil {
			m.currentSystem = nil
			return eris.Wrapf(err, "system %s generated an error", systemName)
		}
	}

	// Set the current system to nil to indicate that no system is currently running
	m.currentSystem = nil
	return nil
}

func (m *SystemManager) GetSystemNames() []string {
	return m.registeredSystems
}

func (m *SystemManager) GetCurrentSystem() string {
	if m.currentSystem == nil {
		return "no_system"
	}
	return *m.currentSystem
}

// SystemName derives the registration name of a system function, for tests
// and diagnostics.
func SystemName(system System) string {
	return filepath.Base(runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name())
}
