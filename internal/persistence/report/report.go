// Package report turns a snapshot and the bed event log into a per-bed CSV
// table and a summary of the bed population.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/world"
	"saltpeter.ai/internal/sim/world/logic/ids"
)

// BedRow is one bed in the CSV report.
type BedRow struct {
	BedID            string  `csv:"bed_id"`
	X                int     `csv:"x"`
	Y                int     `csv:"y"`
	Z                int     `csv:"z"`
	Material         float64 `csv:"material"`
	LastGrowthHours  float64 `csv:"last_growth_hours"`
	HoursSinceGrowth float64 `csv:"hours_since_growth"`
	Moisture         float64 `csv:"moisture"`
	Grows            int     `csv:"grows"`
	Decays           int     `csv:"decays"`
	Fills            int     `csv:"fills"`
	UnitsFilled      int     `csv:"units_filled"`
}

type Summary struct {
	Tick       uint64  `json:"tick"`
	TotalHours float64 `json:"total_hours"`
	Beds       int     `json:"beds"`

	MaterialMean   float64 `json:"material_mean"`
	MaterialStdDev float64 `json:"material_stddev"`
	MaterialMedian float64 `json:"material_median"`
	EmptyBeds      int     `json:"empty_beds"`
	FullBeds       int     `json:"full_beds"`

	Events map[string]int `json:"events"`
}

type Report struct {
	Rows    []BedRow
	Summary Summary
}

// Build joins the beds of snap with the events logged up to the snapshot tick.
func Build(snap snapshot.SnapshotV1, events []world.BedEvent) Report {
	perBed := map[string]*BedRow{}
	rows := make([]BedRow, 0, len(snap.Beds))
	for _, b := range snap.Beds {
		inst := nitrebed.LoadRecord(b.Record)
		rows = append(rows, BedRow{
			BedID:            ids.BedIDAt(b.Pos[0], b.Pos[1], b.Pos[2]),
			X:                b.Pos[0],
			Y:                b.Pos[1],
			Z:                b.Pos[2],
			Material:         inst.OrganicMaterial,
			LastGrowthHours:  inst.TotalHoursLastGrowth,
			HoursSinceGrowth: snap.TotalHours - inst.TotalHoursLastGrowth,
			Moisture:         inst.MoistureLevel,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BedID < rows[j].BedID })
	for i := range rows {
		perBed[rows[i].BedID] = &rows[i]
	}

	sum := Summary{
		Tick:       snap.Header.Tick,
		TotalHours: snap.TotalHours,
		Beds:       len(rows),
		Events:     map[string]int{},
	}
	for _, ev := range events {
		if ev.Tick > snap.Header.Tick {
			continue
		}
		sum.Events[ev.Kind]++
		r := perBed[ev.BedID]
		if r == nil {
			continue
		}
		switch ev.Kind {
		case world.EventGrow:
			r.Grows++
		case world.EventDecay:
			r.Decays++
		case world.EventFill:
			r.Fills++
			r.UnitsFilled += ev.Units
		}
	}

	if len(rows) > 0 {
		material := make([]float64, len(rows))
		for i, r := range rows {
			material[i] = r.Material
			switch {
			case r.Material <= 0:
				sum.EmptyBeds++
			case r.Material >= 1:
				sum.FullBeds++
			}
		}
		sum.MaterialMean, sum.MaterialStdDev = stat.MeanStdDev(material, nil)
		if len(rows) == 1 {
			sum.MaterialStdDev = 0
		}
		sort.Float64s(material)
		sum.MaterialMedian = stat.Quantile(0.5, stat.Empirical, material, nil)
	}
	return Report{Rows: rows, Summary: sum}
}

// Write stores beds.csv and summary.json under dir.
func (r Report) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "beds.csv"))
	if err != nil {
		return fmt.Errorf("creating beds.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(r.Rows, f); err != nil {
		return fmt.Errorf("writing beds.csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	b, err := json.MarshalIndent(r.Summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "summary.json"), b, 0o644)
}

// ReadRows loads a beds.csv written by Write.
func ReadRows(path string) ([]BedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []BedRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
