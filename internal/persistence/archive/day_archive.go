package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"saltpeter.ai/internal/persistence/snapshot"
)

// HoursPerDay is the length of one in-game day on the world calendar.
const HoursPerDay = 24

type DayArchiveMeta struct {
	Day        int     `json:"day"`
	Tick       uint64  `json:"tick"`
	TotalHours float64 `json:"total_hours"`
	Seed       int64   `json:"seed"`
	Snapshot   string  `json:"snapshot"`
	Beds       int     `json:"beds"`
	CreatedAt  string  `json:"created_at"`
}

// ArchiveDaySnapshot keeps the first snapshot written on each in-game day under
// `worldDir/archives/day_<NNNN>/`. Later snapshots of the same day are ignored.
func ArchiveDaySnapshot(worldDir, snapshotPath string, snap snapshot.SnapshotV1) (day int, archivedPath string, archived bool, err error) {
	if snap.TotalHours < 0 || math.IsNaN(snap.TotalHours) {
		return 0, "", false, nil
	}
	day = int(snap.TotalHours / HoursPerDay)

	archiveDir := filepath.Join(worldDir, "archives", fmt.Sprintf("day_%04d", day))
	if _, err := os.Stat(filepath.Join(archiveDir, "meta.json")); err == nil {
		return day, "", false, nil
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return 0, "", false, err
	}

	dst := filepath.Join(archiveDir, filepath.Base(snapshotPath))
	if err := copyFile(snapshotPath, dst); err != nil {
		return 0, "", false, err
	}

	meta := DayArchiveMeta{
		Day:        day,
		Tick:       snap.Header.Tick,
		TotalHours: snap.TotalHours,
		Seed:       snap.Seed,
		Snapshot:   filepath.Base(dst),
		Beds:       len(snap.Beds),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return 0, "", false, err
	}
	if err := os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644); err != nil {
		return 0, "", false, err
	}
	return day, dst, true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
