package world

import (
	"path/filepath"
	"testing"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/nitrebed"
)

func TestSnapshot_RoundTripPreservesBedsAndActors(t *testing.T) {
	w := newTestWorld(t)
	pos := bedPos(w)
	w.SetBlock(pos, blockID(t, w, "NITRE_BED_MOIST"))
	*w.beds[pos] = nitrebed.BedInstance{OrganicMaterial: 0.45, TotalHoursLastGrowth: 3.5, MoistureLevel: 0.4}

	farm := Vec3i{X: -3, Y: pos.Y, Z: 1}
	w.SetBlock(farm, blockID(t, w, "FARMLAND"))
	w.SetFarmlandMoisture(farm, 0.9)

	a := w.AddActor("p1")
	act(w, a, protocol.ActMsg{Op: protocol.OpHold, Item: "WOOD_BUCKET", Count: 1, Liquid: "URINE", Litres: 4})
	stepN(w, 10)

	tick := w.CurrentTick()
	snap := w.ExportSnapshot(tick)
	path := filepath.Join(t.TempDir(), "snap.zst")
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	h, err := snapshot.ReadHeader(path)
	if err != nil || h.Tick != tick || h.WorldID != "test" {
		t.Fatalf("header: %+v err=%v", h, err)
	}
	loaded, err := snapshot.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	w2 := newTestWorld(t)
	if err := w2.ImportSnapshot(loaded); err != nil {
		t.Fatalf("import: %v", err)
	}

	if got, want := w2.stateDigest(tick), w.stateDigest(tick); got != want {
		t.Fatalf("digest mismatch after import")
	}
	st, ok := w2.Bed(pos)
	if !ok || st != *w.beds[pos] {
		t.Fatalf("bed: got %+v want %+v", st, *w.beds[pos])
	}
	if w2.FarmlandMoisture(farm) != 0.9 {
		t.Fatalf("farmland moisture lost")
	}
	a2 := w2.Actor(a.ID)
	if a2 == nil || a2.Hand.Litres() != 4 || a2.Hand.Liquid != "URINE" {
		t.Fatalf("actor hand: %+v", a2)
	}
	if w2.sched.Len() != 1 {
		t.Fatalf("imported beds must be rescheduled, got %d", w2.sched.Len())
	}
	if w2.TotalHours() != w.TotalHours() {
		t.Fatalf("clock: got %v want %v", w2.TotalHours(), w.TotalHours())
	}

	// A returning player takes over the restored actor.
	if b := w2.AddActor("p1"); b.ID != a.ID {
		t.Fatalf("rejoin created a new actor %s", b.ID)
	}
	if c := w2.AddActor("p2"); c.ID == a.ID {
		t.Fatalf("new actor reused id %s", c.ID)
	}
}

func TestSnapshot_ImportKeepsClockAcrossRetune(t *testing.T) {
	w := newTestWorld(t)
	stepN(w, 2400)
	snap := w.ExportSnapshot(w.CurrentTick())

	w2 := newTestWorld(t)
	w2.cal.SecondsPerHour = 60
	if err := w2.ImportSnapshot(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := w2.TotalHours(); got < 0.999 || got > 1.001 {
		t.Fatalf("hours after import: %v want 1", got)
	}
}

func TestSnapshot_RejectsUnknownVersion(t *testing.T) {
	w := newTestWorld(t)
	snap := w.ExportSnapshot(0)
	snap.Header.Version = 7
	if err := newTestWorld(t).ImportSnapshot(snap); err == nil {
		t.Fatalf("expected version error")
	}
}
