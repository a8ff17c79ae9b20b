package tessera

import "github.com/rs/zerolog"

// Context is what a system receives each tick: the world, the fixed delta
// time, and a logger tagged with the running system's name. It replaces the
// process-wide world/atlas globals of older engine designs; everything a
// system touches is reachable from here.
type Context struct {
	world  *World
	dt     float64
	logger zerolog.Logger
}

func newContext(w *World, dt float64) *Context {
	return &Context{
		world:  w,
		dt:     dt,
		logger: w.logger,
	}
}

// World returns the world this tick operates on.
func (c *Context) World() *World { return c.world }

// DT returns the fixed timestep for this tick, in seconds.
func (c *Context) DT() float64 { return c.dt }

// Logger returns the logger for the currently running system.
func (c *Context) Logger() *zerolog.Logger { return &c.logger }

func (c *Context) setSystem(name string) {
	c.logger = c.world.Logger().With().Str("system", name).Logger()
}
