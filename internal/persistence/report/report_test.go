package report

import (
	"math"
	"path/filepath"
	"testing"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/world"
)

func bed(x int, material, last float64) snapshot.BedV1 {
	inst := nitrebed.BedInstance{OrganicMaterial: material, TotalHoursLastGrowth: last}
	return snapshot.BedV1{Pos: [3]int{x, 7, 0}, Record: inst.Record()}
}

func TestBuild(t *testing.T) {
	snap := snapshot.SnapshotV1{
		Header:     snapshot.Header{Version: 1, Tick: 500},
		TotalHours: 100,
		Beds:       []snapshot.BedV1{bed(2, 0.5, 80), bed(1, 1, 90), bed(3, 0, 10)},
	}
	events := []world.BedEvent{
		{Tick: 10, Kind: world.EventFill, BedID: "NITRE_BED@1,7,0", Units: 1},
		{Tick: 11, Kind: world.EventFill, BedID: "NITRE_BED@1,7,0", Units: 1},
		{Tick: 300, Kind: world.EventGrow, BedID: "NITRE_BED@1,7,0"},
		{Tick: 400, Kind: world.EventDecay, BedID: "NITRE_BED@2,7,0"},
		{Tick: 450, Kind: world.EventDeplete, BedID: "NITRE_BED@9,7,0"},
		{Tick: 600, Kind: world.EventGrow, BedID: "NITRE_BED@2,7,0"},
	}
	r := Build(snap, events)

	if len(r.Rows) != 3 || r.Rows[0].BedID != "NITRE_BED@1,7,0" {
		t.Fatalf("rows not sorted by bed id: %+v", r.Rows)
	}
	if r.Rows[0].Fills != 2 || r.Rows[0].UnitsFilled != 2 || r.Rows[0].Grows != 1 {
		t.Fatalf("bed 1 counters: %+v", r.Rows[0])
	}
	if r.Rows[1].Grows != 0 || r.Rows[1].Decays != 1 {
		t.Fatalf("events after the snapshot tick must be ignored: %+v", r.Rows[1])
	}
	if r.Rows[1].HoursSinceGrowth != 20 {
		t.Fatalf("hours since growth: %v", r.Rows[1].HoursSinceGrowth)
	}

	s := r.Summary
	if s.Beds != 3 || s.EmptyBeds != 1 || s.FullBeds != 1 {
		t.Fatalf("summary counts: %+v", s)
	}
	if math.Abs(s.MaterialMean-0.5) > 1e-9 || math.Abs(s.MaterialStdDev-0.5) > 1e-9 || s.MaterialMedian != 0.5 {
		t.Fatalf("material stats: mean=%v sd=%v median=%v", s.MaterialMean, s.MaterialStdDev, s.MaterialMedian)
	}
	if s.Events[world.EventDeplete] != 1 || s.Events[world.EventGrow] != 1 {
		t.Fatalf("event totals: %v", s.Events)
	}
}

func TestWriteAndReadRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	r := Build(snapshot.SnapshotV1{TotalHours: 5, Beds: []snapshot.BedV1{bed(4, 0.25, 1)}}, nil)
	if err := r.Write(dir); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := ReadRows(filepath.Join(dir, "beds.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0] != r.Rows[0] {
		t.Fatalf("round trip: got %+v want %+v", rows, r.Rows)
	}
	if r.Summary.MaterialStdDev != 0 {
		t.Fatalf("single bed stddev: %v", r.Summary.MaterialStdDev)
	}
}
