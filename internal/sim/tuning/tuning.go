package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz         int `yaml:"tick_rate_hz"`
	Height             int `yaml:"height"`
	GroundY            int `yaml:"ground_y"`
	ObsRadius          int `yaml:"obs_radius"`
	WorldBoundaryR     int `yaml:"world_boundary_r"`
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`

	Calendar   Calendar   `yaml:"calendar"`
	Scheduler  Scheduler  `yaml:"scheduler"`
	NitreBed   NitreBed   `yaml:"nitre_bed"`
	RateLimits RateLimits `yaml:"rate_limits"`
}

type Calendar struct {
	StartHours float64 `yaml:"start_hours"`
	// Real seconds that make up one in-game hour.
	SecondsPerHour float64 `yaml:"seconds_per_hour"`
}

// Scheduler controls how often each bed is evaluated. Every bed draws its own
// interval from [BaseIntervalMs, BaseIntervalMs+JitterMs).
type Scheduler struct {
	BaseIntervalMs int   `yaml:"base_interval_ms"`
	JitterMs       int   `yaml:"jitter_ms"`
	Seed           int64 `yaml:"seed"`
}

type NitreBed struct {
	HoursPerGrowth    float64  `yaml:"hours_per_growth"`
	MaterialPerGrowth float64  `yaml:"material_per_growth"`
	DepletedBlock     string   `yaml:"depleted_block"`
	Stages            []string `yaml:"stages"`
	FullStage         string   `yaml:"full_stage"`

	MaterialRequired     float64 `yaml:"material_required"`
	DefaultFillPerLitre  float64 `yaml:"default_fill_per_litre"`
	DefaultItemsPerLitre float64 `yaml:"default_items_per_litre"`

	HintContainer       string  `yaml:"hint_container"`
	HintContainerLitres float64 `yaml:"hint_container_litres"`

	Sound      string  `yaml:"sound"`
	SoundRange float64 `yaml:"sound_range"`
}

type RateLimits struct {
	ActWindowTicks int `yaml:"act_window_ticks"`
	ActMax         int `yaml:"act_max"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion:    "1.0",
		TickRateHz:         20,
		Height:             64,
		GroundY:            8,
		ObsRadius:          4,
		WorldBoundaryR:     2000,
		SnapshotEveryTicks: 6000,
		Calendar: Calendar{
			StartHours:     0,
			SecondsPerHour: 120,
		},
		Scheduler: Scheduler{
			BaseIntervalMs: 3300,
			JitterMs:       400,
			Seed:           1337,
		},
		NitreBed: NitreBed{
			HoursPerGrowth:       72,
			MaterialPerGrowth:    0.3,
			DepletedBlock:        "SOIL_LOW_BARE",
			Stages:               []string{"SALTPETER_BUD_0", "SALTPETER_BUD_1"},
			FullStage:            "SALTPETER",
			MaterialRequired:     0.5,
			DefaultFillPerLitre:  1,
			DefaultItemsPerLitre: 100,
			HintContainer:        "WOOD_BUCKET",
			HintContainerLitres:  10,
			Sound:                "block/dirt",
			SoundRange:           16,
		},
		RateLimits: RateLimits{
			ActWindowTicks: 20,
			ActMax:         40,
		},
	}
}

// Load reads a tuning file on top of Defaults. An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		t.Normalize()
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Normalize fills zero values with defaults.
func (t *Tuning) Normalize() {
	d := Defaults()
	if t.ProtocolVersion == "" {
		t.ProtocolVersion = d.ProtocolVersion
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = d.TickRateHz
	}
	if t.Height <= 0 {
		t.Height = d.Height
	}
	if t.ObsRadius <= 0 {
		t.ObsRadius = d.ObsRadius
	}
	if t.Calendar.SecondsPerHour <= 0 {
		t.Calendar.SecondsPerHour = d.Calendar.SecondsPerHour
	}
	if t.Scheduler.BaseIntervalMs <= 0 {
		t.Scheduler.BaseIntervalMs = d.Scheduler.BaseIntervalMs
	}
	if t.Scheduler.JitterMs < 0 {
		t.Scheduler.JitterMs = 0
	}
	nb := &t.NitreBed
	if nb.HoursPerGrowth <= 0 {
		nb.HoursPerGrowth = d.NitreBed.HoursPerGrowth
	}
	if nb.MaterialPerGrowth <= 0 {
		nb.MaterialPerGrowth = d.NitreBed.MaterialPerGrowth
	}
	if strings.TrimSpace(nb.DepletedBlock) == "" {
		nb.DepletedBlock = d.NitreBed.DepletedBlock
	}
	if len(nb.Stages) == 0 {
		nb.Stages = d.NitreBed.Stages
	}
	if nb.FullStage == "" {
		nb.FullStage = d.NitreBed.FullStage
	}
	if nb.MaterialRequired <= 0 {
		nb.MaterialRequired = d.NitreBed.MaterialRequired
	}
	if nb.DefaultItemsPerLitre <= 0 {
		nb.DefaultItemsPerLitre = d.NitreBed.DefaultItemsPerLitre
	}
	if nb.HintContainerLitres <= 0 {
		nb.HintContainerLitres = d.NitreBed.HintContainerLitres
	}
	if nb.Sound == "" {
		nb.Sound = d.NitreBed.Sound
	}
	if nb.SoundRange <= 0 {
		nb.SoundRange = d.NitreBed.SoundRange
	}
}

func (t Tuning) Validate() error {
	if t.GroundY < 0 || t.GroundY >= t.Height-2 {
		return fmt.Errorf("ground_y %d out of range for height %d", t.GroundY, t.Height)
	}
	if len(t.NitreBed.Stages) != 2 {
		return fmt.Errorf("nitre_bed.stages: want 2 bud stages, got %d", len(t.NitreBed.Stages))
	}
	if t.NitreBed.MaterialPerGrowth > 1 {
		return fmt.Errorf("nitre_bed.material_per_growth must be <= 1")
	}
	if t.NitreBed.DefaultFillPerLitre < 0 {
		return fmt.Errorf("nitre_bed.default_fill_per_litre must be >= 0")
	}
	return nil
}

// TickDurationMs is the length of one simulation tick.
func (t Tuning) TickDurationMs() int {
	if t.TickRateHz <= 0 {
		return 50
	}
	return 1000 / t.TickRateHz
}
