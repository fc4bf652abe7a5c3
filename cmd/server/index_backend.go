package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"saltpeter.ai/internal/persistence/indexdb"
	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world"
)

type runtimeIndex interface {
	world.TickLogger
	world.EventSink
	Close() error
	UpsertCatalogs(configDir string, cats *catalogs.Catalogs, tune tuning.Tuning) error
	RecordSnapshot(path string, snap snapshot.SnapshotV1)
	BedHistory(ctx context.Context, bedID string) ([]indexdb.EventRow, error)
	Stats() indexdb.Stats
}

func openRuntimeIndex(worldDir string, disableDB bool) (runtimeIndex, error) {
	if disableDB {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SP_INDEX_BACKEND"))) {
	case "none", "off", "disabled":
		return nil, nil
	}
	return indexdb.OpenSQLite(filepath.Join(worldDir, "index", "world.sqlite"))
}

type multiTickLogger struct {
	a world.TickLogger
	b world.TickLogger
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteTick(entry)
	}
	if m.b != nil {
		_ = m.b.WriteTick(entry)
	}
	return nil
}
