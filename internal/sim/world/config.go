package world

import "saltpeter.ai/internal/sim/tuning"

type WorldConfig struct {
	ID                 string
	Seed               int64
	TickRateHz         int
	ObsRadius          int
	Height             int
	GroundY            int
	BoundaryR          int
	SnapshotEveryTicks int

	// Worldgen tuning (flat world).
	SpawnClearRadius        int
	FarmlandClusterPermille int

	Calendar  tuning.Calendar
	Scheduler tuning.Scheduler
	NitreBed  tuning.NitreBed

	ActWindowTicks int
	ActMax         int
}

// ConfigFromTuning builds a world config from a loaded tuning file.
func ConfigFromTuning(id string, seed int64, t tuning.Tuning) WorldConfig {
	return WorldConfig{
		ID:                      id,
		Seed:                    seed,
		TickRateHz:              t.TickRateHz,
		ObsRadius:               t.ObsRadius,
		Height:                  t.Height,
		GroundY:                 t.GroundY,
		BoundaryR:               t.WorldBoundaryR,
		SnapshotEveryTicks:      t.SnapshotEveryTicks,
		SpawnClearRadius:        6,
		FarmlandClusterPermille: 350,
		Calendar:                t.Calendar,
		Scheduler:               t.Scheduler,
		NitreBed:                t.NitreBed,
		ActWindowTicks:          t.RateLimits.ActWindowTicks,
		ActMax:                  t.RateLimits.ActMax,
	}
}

func (cfg *WorldConfig) applyDefaults() {
	d := tuning.Defaults()
	if cfg.ID == "" {
		cfg.ID = "world_1"
	}
	if cfg.TickRateHz <= 0 {
		cfg.TickRateHz = d.TickRateHz
	}
	if cfg.ObsRadius <= 0 {
		cfg.ObsRadius = d.ObsRadius
	}
	if cfg.Height <= 0 {
		cfg.Height = d.Height
	}
	if cfg.GroundY <= 0 || cfg.GroundY >= cfg.Height {
		cfg.GroundY = d.GroundY
		if cfg.GroundY >= cfg.Height {
			cfg.GroundY = cfg.Height / 2
		}
	}
	if cfg.Calendar.SecondsPerHour <= 0 {
		cfg.Calendar.SecondsPerHour = d.Calendar.SecondsPerHour
	}
	if cfg.Scheduler.BaseIntervalMs <= 0 {
		cfg.Scheduler.BaseIntervalMs = d.Scheduler.BaseIntervalMs
	}
	if cfg.Scheduler.JitterMs < 0 {
		cfg.Scheduler.JitterMs = 0
	}
}
