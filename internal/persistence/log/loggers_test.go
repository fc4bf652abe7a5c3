package log

import (
	"testing"
	"time"

	"saltpeter.ai/internal/sim/world"
)

func TestBedEventLogger_RoundTripAcrossRotation(t *testing.T) {
	dir := t.TempDir()
	l := NewBedEventLogger(dir)
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	l.w.now = func() time.Time { return clock }

	if err := l.WriteBedEvent(world.BedEvent{Tick: 1, Kind: world.EventFill, BedID: "NITRE_BED@1,7,0", Material: 0.5}); err != nil {
		t.Fatalf("write: %v", err)
	}
	clock = clock.Add(2 * time.Minute)
	if err := l.WriteBedEvent(world.BedEvent{Tick: 2, Kind: world.EventGrow, BedID: "NITRE_BED@1,7,0", Stage: "BUD", Material: 0.2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	evs, err := ReadBedEvents(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Kind != world.EventFill || evs[1].Stage != "BUD" {
		t.Fatalf("events out of order: %+v", evs)
	}
}

func TestTickLogger_ReadTicks(t *testing.T) {
	dir := t.TempDir()
	l := NewTickLogger(dir)
	l.w.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	for tick := uint64(3); tick < 6; tick++ {
		if err := l.WriteTick(world.TickLogEntry{Tick: tick, Leaves: []string{"P1"}, Digest: "d"}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	entries, err := ReadTicks(l.w.pathForHour("2026-03-01-10"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 3 || entries[2].Tick != 5 || entries[0].Leaves[0] != "P1" {
		t.Fatalf("entries: %+v", entries)
	}
}
