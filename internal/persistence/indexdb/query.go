package indexdb

import (
	"context"
	"database/sql"
)

// EventRow is a bed event as read back from the index.
type EventRow struct {
	Tick     uint64
	Hours    float64
	Kind     string
	BedID    string
	Actor    string
	Stage    string
	Item     string
	Units    int
	Material float64
}

// BedHistory returns every indexed event of one bed in tick order.
func (s *SQLiteIndex) BedHistory(ctx context.Context, bedID string) ([]EventRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick,hours,kind,bed_id,actor,stage,item,units,material FROM bed_events WHERE bed_id=? ORDER BY tick,seq`, bedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var (
			r                  EventRow
			tick               int64
			actor, stage, item sql.NullString
		)
		if err := rows.Scan(&tick, &r.Hours, &r.Kind, &r.BedID, &actor, &stage, &item, &r.Units, &r.Material); err != nil {
			return nil, err
		}
		r.Tick = uint64(tick)
		r.Actor, r.Stage, r.Item = actor.String, stage.String, item.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountEvents returns how many events of each kind are indexed.
func (s *SQLiteIndex) CountEvents(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM bed_events GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// LatestSnapshot returns the path and tick of the newest indexed snapshot.
func (s *SQLiteIndex) LatestSnapshot(ctx context.Context) (path string, tick uint64, ok bool, err error) {
	var t int64
	err = s.db.QueryRowContext(ctx, `SELECT path, tick FROM snapshots ORDER BY tick DESC LIMIT 1`).Scan(&path, &t)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return path, uint64(t), true, nil
}
