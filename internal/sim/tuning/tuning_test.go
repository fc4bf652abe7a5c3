package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := Defaults()
	if got.TickRateHz != d.TickRateHz || got.NitreBed.HoursPerGrowth != d.NitreBed.HoursPerGrowth {
		t.Fatalf("got %+v", got)
	}
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	path := writeTuning(t, `
tick_rate_hz: 10
nitre_bed:
  hours_per_growth: 24
scheduler:
  jitter_ms: 100
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TickRateHz != 10 || got.NitreBed.HoursPerGrowth != 24 || got.Scheduler.JitterMs != 100 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	d := Defaults()
	if got.NitreBed.MaterialPerGrowth != d.NitreBed.MaterialPerGrowth || got.Scheduler.BaseIntervalMs != d.Scheduler.BaseIntervalMs {
		t.Fatalf("defaults lost: %+v", got)
	}
	if len(got.NitreBed.Stages) != 2 || got.NitreBed.Stages[0] != "SALTPETER_BUD_0" {
		t.Fatalf("stages: %v", got.NitreBed.Stages)
	}
	if got.TickDurationMs() != 100 {
		t.Fatalf("tick duration: %d", got.TickDurationMs())
	}
}

func TestLoad_ShippedTuning(t *testing.T) {
	if _, err := Load("../../../configs/tuning.yaml"); err != nil {
		t.Fatalf("load configs/tuning.yaml: %v", err)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"three stages": {
			body: "nitre_bed:\n  stages: [A, B, C]\n",
			want: "nitre_bed.stages",
		},
		"material above one": {
			body: "nitre_bed:\n  material_per_growth: 1.5\n",
			want: "material_per_growth",
		},
		"ground above height": {
			body: "height: 32\nground_y: 31\n",
			want: "ground_y",
		},
		"negative fill per litre": {
			body: "nitre_bed:\n  default_fill_per_litre: -1\n",
			want: "default_fill_per_litre",
		},
		"bad yaml": {
			body: "tick_rate_hz: [\n",
			want: "tuning.yaml",
		},
	}
	for name, tc := range cases {
		_, err := Load(writeTuning(t, tc.body))
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", name, err, tc.want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestNormalize_FillsZeros(t *testing.T) {
	var tu Tuning
	tu.Scheduler.JitterMs = -5
	tu.Normalize()

	d := Defaults()
	if tu.ProtocolVersion != d.ProtocolVersion || tu.TickRateHz != d.TickRateHz || tu.Height != d.Height {
		t.Fatalf("top-level defaults: %+v", tu)
	}
	if tu.Calendar.SecondsPerHour != d.Calendar.SecondsPerHour {
		t.Fatalf("seconds per hour: %v", tu.Calendar.SecondsPerHour)
	}
	if tu.Scheduler.BaseIntervalMs != d.Scheduler.BaseIntervalMs || tu.Scheduler.JitterMs != 0 {
		t.Fatalf("scheduler: %+v", tu.Scheduler)
	}
	nb := tu.NitreBed
	if nb.HoursPerGrowth != 72 || nb.MaterialPerGrowth != 0.3 || nb.DepletedBlock != "SOIL_LOW_BARE" || nb.FullStage != "SALTPETER" {
		t.Fatalf("nitre bed: %+v", nb)
	}
	if nb.MaterialRequired != 0.5 || nb.HintContainerLitres != 10 || nb.Sound == "" {
		t.Fatalf("nitre bed extras: %+v", nb)
	}
	if err := tu.Validate(); err != nil {
		t.Fatalf("normalized zero tuning should validate: %v", err)
	}
}
