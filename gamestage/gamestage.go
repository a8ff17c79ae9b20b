// Package gamestage tracks which mode the simulation is in. The stage gates
// the scheduler: Editing and Paused worlds never tick, so pausing preserves
// exact world state across resume.
package gamestage

import (
	"sync/atomic"
)

type Stage string

const (
	Init     Stage = "Init"     // The default stage; components and systems may still be registered
	Editing  Stage = "Editing"  // The editor owns the world; the scheduler is never invoked
	Playing  Stage = "Playing"  // The scheduler runs once per frame
	Paused   Stage = "Paused"   // Neither systems nor physics advance
	ShutDown Stage = "ShutDown" // The world has been torn down
)

type Manager struct {
	current *atomic.Value
}

func NewManager() *Manager {
	m := &Manager{
		current: &atomic.Value{},
	}
	m.Store(Init)
	return m
}

func (m *Manager) CompareAndSwap(oldStage, newStage Stage) (swapped bool) {
	return m.current.CompareAndSwap(oldStage, newStage)
}

func (m *Manager) Current() Stage {
	return m.current.Load().(Stage)
}

func (m *Manager) Store(val Stage) {
	m.current.Store(val)
}

func (m *Manager) Swap(newStage Stage) (oldStage Stage) {
	return m.current.Swap(newStage).(Stage)
}
