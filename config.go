package tessera

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type RunMode string

const (
	RunModeProd RunMode = "production"
	RunModeDev  RunMode = "development"
)

const DefaultLogLevel = "info"

// WorldConfig is the engine configuration, loaded from the environment.
// Everything has a development default so a bare NewWorld() works.
type WorldConfig struct {
	// TesseraMode selects log formatting: development mode pretty-prints to
	// the console, production emits JSON.
	TesseraMode RunMode `config:"TESSERA_MODE"`
	// TesseraTickRate is the target fixed timestep frequency in Hz. The
	// engine does not run its own loop; the rate is the dt hint for callers
	// and the solver configuration.
	TesseraTickRate int `config:"TESSERA_TICK_RATE"`
	// TesseraGravityX/Y is the solver's global gravity. The default is zero,
	// suiting top-down and space-like scenes.
	TesseraGravityX float64 `config:"TESSERA_GRAVITY_X"`
	TesseraGravityY float64 `config:"TESSERA_GRAVITY_Y"`
	// TesseraMaxSubsteps caps continuous-collision sub-stepping per tick.
	TesseraMaxSubsteps int    `config:"TESSERA_MAX_SUBSTEPS"`
	TesseraLogLevel    string `config:"TESSERA_LOG_LEVEL"`
}

var defaultConfig = WorldConfig{
	TesseraMode:        RunModeDev,
	TesseraTickRate:    60,
	TesseraGravityX:    0,
	TesseraGravityY:    0,
	TesseraMaxSubsteps: 8,
	TesseraLogLevel:    DefaultLogLevel,
}

func loadWorldConfig() (*WorldConfig, error) {
	cfg := defaultConfig
	if err := config.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "failed to load config from env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func (w *WorldConfig) Validate() error {
	if w.TesseraMode != RunModeProd && w.TesseraMode != RunModeDev {
		return eris.Errorf("TESSERA_MODE must be %q or %q, got %q", RunModeProd, RunModeDev, w.TesseraMode)
	}
	if w.TesseraTickRate <= 0 {
		return eris.Errorf("TESSERA_TICK_RATE must be positive, got %d", w.TesseraTickRate)
	}
	if w.TesseraMaxSubsteps < 1 {
		return eris.Errorf("TESSERA_MAX_SUBSTEPS must be at least 1, got %d", w.TesseraMaxSubsteps)
	}
	if _, err := zerolog.ParseLevel(w.TesseraLogLevel); err != nil {
		return eris.Wrapf(err, "TESSERA_LOG_LEVEL %q is not a zerolog level", w.TesseraLogLevel)
	}
	return nil
}

// FixedDT returns the timestep implied by the configured tick rate.
func (w WorldConfig) FixedDT() float64 {
	return 1.0 / float64(w.TesseraTickRate)
}
