package indexdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world"
)

func openTest(t *testing.T) *SQLiteIndex {
	t.Helper()
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index", "world.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestSQLiteIndex_BedEvents(t *testing.T) {
	idx := openTest(t)
	ctx := context.Background()

	evs := []world.BedEvent{
		{Tick: 10, Hours: 1, Kind: world.EventFill, BedID: "NITRE_BED@2,7,0", Pos: [3]int{2, 7, 0}, Actor: "P1", Item: "POOP", Units: 1, Material: 0.3},
		{Tick: 10, Hours: 1, Kind: world.EventFill, BedID: "NITRE_BED@2,7,0", Pos: [3]int{2, 7, 0}, Actor: "P1", Item: "POOP", Units: 1, Material: 0.6},
		{Tick: 900, Hours: 80, Kind: world.EventGrow, BedID: "NITRE_BED@2,7,0", Pos: [3]int{2, 7, 0}, Stage: "BUD", Material: 0.3},
		{Tick: 900, Hours: 80, Kind: world.EventDeplete, BedID: "NITRE_BED@5,7,5", Pos: [3]int{5, 7, 5}},
	}
	for _, ev := range evs {
		if err := idx.WriteBedEvent(ev); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := idx.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	hist, err := idx.BedHistory(ctx, "NITRE_BED@2,7,0")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("history len: got %d want 3", len(hist))
	}
	if hist[1].Material != 0.6 || hist[2].Kind != world.EventGrow || hist[2].Stage != "BUD" {
		t.Fatalf("history order or content: %+v", hist)
	}
	if hist[0].Actor != "P1" || hist[0].Item != "POOP" || hist[2].Actor != "" {
		t.Fatalf("nullable columns: %+v", hist)
	}

	counts, err := idx.CountEvents(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[world.EventFill] != 2 || counts[world.EventGrow] != 1 || counts[world.EventDeplete] != 1 {
		t.Fatalf("counts: %v", counts)
	}
	if st := idx.Stats(); st.DropEventTotal != 0 || st.QueueCapacity == 0 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestSQLiteIndex_SnapshotsAndTicks(t *testing.T) {
	idx := openTest(t)
	ctx := context.Background()

	if _, _, ok, err := idx.LatestSnapshot(ctx); err != nil || ok {
		t.Fatalf("empty index: ok=%v err=%v", ok, err)
	}

	bed := nitrebed.BedInstance{OrganicMaterial: 0.5, TotalHoursLastGrowth: 3, MoistureLevel: 0.2}
	for _, tick := range []uint64{100, 200} {
		idx.RecordSnapshot(fmt.Sprintf("/tmp/snap-%d.zst", tick), snapshot.SnapshotV1{
			Header: snapshot.Header{Version: 1, WorldID: "w", Tick: tick},
			Seed:   7,
			Height: 64,
			Beds:   []snapshot.BedV1{{Pos: [3]int{1, 2, 3}, Record: bed.Record()}},
		})
	}
	_ = idx.WriteTick(world.TickLogEntry{Tick: 200, Hours: 6, Beds: 1, Digest: "abc"})
	if err := idx.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	path, tick, ok, err := idx.LatestSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if tick != 200 || path != "/tmp/snap-200.zst" {
		t.Fatalf("latest: %s @ %d", path, tick)
	}

	var material float64
	if err := idx.db.QueryRow(`SELECT material FROM snapshot_beds WHERE tick=200 AND bed_id=?`, "NITRE_BED@1,2,3").Scan(&material); err != nil {
		t.Fatalf("snapshot bed row: %v", err)
	}
	if material != 0.5 {
		t.Fatalf("material: %v", material)
	}
	var digest string
	if err := idx.db.QueryRow(`SELECT digest FROM ticks WHERE tick=200`).Scan(&digest); err != nil || digest != "abc" {
		t.Fatalf("tick row: %q %v", digest, err)
	}
}

func TestSQLiteIndex_UpsertCatalogs(t *testing.T) {
	idx := openTest(t)
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	if err := idx.UpsertCatalogs("../../../configs", cats, tuning.Defaults()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	var n int
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM catalogs`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Fatalf("catalog rows: got %d want 5", n)
	}
}

func TestSQLiteIndex_CloseIsIdempotent(t *testing.T) {
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "x.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := idx.WriteBedEvent(world.BedEvent{Kind: world.EventGrow}); err != nil {
		t.Fatalf("write after close: %v", err)
	}
}
