package archive

import (
	"os"
	"path/filepath"
	"testing"

	"saltpeter.ai/internal/persistence/snapshot"
)

func writeDummy(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestArchiveDaySnapshot_FirstOfDayWins(t *testing.T) {
	worldDir := filepath.Join(t.TempDir(), "worlds", "w1")

	first := filepath.Join(worldDir, "snapshots", "100.snap.zst")
	writeDummy(t, first, "first")
	day, archivedPath, ok, err := ArchiveDaySnapshot(worldDir, first, snapshot.SnapshotV1{
		Header:     snapshot.Header{Version: 1, WorldID: "w1", Tick: 100},
		TotalHours: 50,
	})
	if err != nil || !ok {
		t.Fatalf("archive: ok=%v err=%v", ok, err)
	}
	if day != 2 {
		t.Fatalf("day=%d want 2", day)
	}
	got, err := os.ReadFile(archivedPath)
	if err != nil || string(got) != "first" {
		t.Fatalf("archived content: %q %v", got, err)
	}

	second := filepath.Join(worldDir, "snapshots", "200.snap.zst")
	writeDummy(t, second, "second")
	if _, _, ok, err := ArchiveDaySnapshot(worldDir, second, snapshot.SnapshotV1{TotalHours: 60}); err != nil || ok {
		t.Fatalf("same day must not be archived again: ok=%v err=%v", ok, err)
	}

	if day, _, ok, _ := ArchiveDaySnapshot(worldDir, second, snapshot.SnapshotV1{TotalHours: 72}); !ok || day != 3 {
		t.Fatalf("next day: ok=%v day=%d", ok, day)
	}
	if _, err := os.Stat(filepath.Join(worldDir, "archives", "day_0003", "meta.json")); err != nil {
		t.Fatalf("expected meta.json: %v", err)
	}
}
