package tessera

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tessera-engine/tessera/types"
)

func newWorldLogger(cfg *WorldConfig, worldID string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.TesseraLogLevel)
	if err != nil {
		// Validate already rejected bad levels; keep a sane fallback anyway.
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.TesseraMode == RunModeDev {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().
		Timestamp().
		Str("world_id", worldID).
		Logger()
}

func loadComponentIntoArrayLogger(info types.ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Uint64("component_id", uint64(info.ID))
	dictLogger = dictLogger.Str("component_name", info.Name)
	return arrayLogger.Dict(dictLogger)
}

// logWorldState logs everything about the world: registered components,
// registered systems, and the current entity/body counts.
func (w *World) logWorldState(level zerolog.Level) {
	event := w.logger.WithLevel(level)

	components := w.components.registeredComponents()
	event.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, info := range components {
		arrayLogger = loadComponentIntoArrayLogger(info, arrayLogger)
	}
	event.Array("components", arrayLogger)

	systems := w.systemManager.GetSystemNames()
	event.Int("total_systems", len(systems))
	systemArray := zerolog.Arr()
	for _, sysName := range systems {
		systemArray = systemArray.Str(sysName)
	}
	event.Array("systems", systemArray)

	event.Int("total_entities", w.registry.count())
	event.Int("total_bodies", w.bridge.BodyCount())
	event.Send()
}

// logAndPanic logs the error and panics; it marks broken invariants that a
// caller cannot recover from mid-tick.
func logAndPanic(w *World, err error) {
	w.Logger().Panic().Err(err).Msg("irrecoverable error")
}

func errNoComponent(id types.EntityID, name string) error {
	return eris.Errorf("entity %d does not have component %q", id, name)
}
