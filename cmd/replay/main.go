package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	persistlog "saltpeter.ai/internal/persistence/log"
	"saltpeter.ai/internal/persistence/report"
	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world"
)

func main() {
	var (
		snapPath   = flag.String("snapshot", "", "path to .snap.zst (empty: fresh world from -seed)")
		seed       = flag.Int64("seed", 1337, "world seed for a fresh world")
		worldID    = flag.String("world", "world_1", "world id for a fresh world")
		ticksDir   = flag.String("ticks", "", "dir containing ticks-*.jsonl.zst to verify (optional)")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		toTick     = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
		hours      = flag.Float64("advance_hours", 0, "game hours to simulate offline after the replay")
		reportDir  = flag.String("report", "", "write beds.csv and summary.json here (optional)")
		eventsDir  = flag.String("events_world_dir", "", "world dir whose bed event log feeds the report (optional)")
	)
	flag.Parse()

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fail("load catalogs", err)
	}
	tp := *tuningPath
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			fail("load tuning", err)
		}
		tune = tuning.Defaults()
	}

	quiet := log.New(io.Discard, "", 0)
	var w *world.World
	if *snapPath != "" {
		snap, err := snapshot.ReadSnapshot(*snapPath)
		if err != nil {
			fail("read snapshot", err)
		}
		fmt.Printf("snapshot v%d world=%s tick=%d hours=%.2f seed=%d height=%d chunks=%d beds=%d actors=%d\n",
			snap.Header.Version, snap.Header.WorldID, snap.Header.Tick, snap.TotalHours, snap.Seed, snap.Height,
			len(snap.Chunks), len(snap.Beds), len(snap.Actors))

		cfg := world.ConfigFromTuning(snap.Header.WorldID, snap.Seed, tune)
		cfg.Height = snap.Height
		cfg.GroundY = snap.GroundY
		cfg.BoundaryR = snap.BoundaryR
		if w, err = world.New(cfg, cats, quiet); err != nil {
			fail("world", err)
		}
		if err := w.ImportSnapshot(snap); err != nil {
			fail("import snapshot", err)
		}
	} else {
		if w, err = world.New(world.ConfigFromTuning(*worldID, *seed, tune), cats, quiet); err != nil {
			fail("world", err)
		}
	}

	if *ticksDir != "" {
		checked, err := replayDir(w, *ticksDir, *toTick)
		if err != nil {
			fail("replay", err)
		}
		fmt.Printf("replay ok: checked=%d ticks, now at tick=%d\n", checked, w.CurrentTick())
	}

	if *hours > 0 {
		n := w.AdvanceHours(*hours)
		fmt.Printf("advanced %d ticks to %.2f hours\n", n, w.TotalHours())
	}

	if *reportDir == "" {
		return
	}
	var events []world.BedEvent
	if *eventsDir != "" {
		if events, err = persistlog.ReadBedEvents(*eventsDir); err != nil {
			fail("read bed events", err)
		}
	}
	rep := report.Build(w.ExportSnapshot(w.CurrentTick()), events)
	if err := rep.Write(*reportDir); err != nil {
		fail("write report", err)
	}
	s := rep.Summary
	fmt.Printf("report: beds=%d material mean=%.3f sd=%.3f median=%.3f empty=%d full=%d -> %s\n",
		s.Beds, s.MaterialMean, s.MaterialStdDev, s.MaterialMedian, s.EmptyBeds, s.FullBeds, *reportDir)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

func listTickFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "ticks-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

// replayDir feeds every logged tick back into w. Ticks without inputs are
// not logged, so the world is stepped idle up to each entry.
func replayDir(w *world.World, dir string, toTick uint64) (uint64, error) {
	files, err := listTickFiles(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no tick logs found in %s", dir)
	}

	startTick := w.CurrentTick()
	var checked uint64
	for _, path := range files {
		entries, err := persistlog.ReadTicks(path)
		if err != nil {
			return checked, err
		}
		for _, entry := range entries {
			if entry.Tick < startTick {
				continue
			}
			if toTick != 0 && entry.Tick > toTick {
				return checked, nil
			}
			if entry.Tick < w.CurrentTick() {
				return checked, fmt.Errorf("tick %d logged out of order (world at %d, file=%s)", entry.Tick, w.CurrentTick(), filepath.Base(path))
			}
			for w.CurrentTick() < entry.Tick {
				w.StepOnce(nil, nil, nil)
			}

			joins := make([]world.JoinRequest, 0, len(entry.Joins))
			for _, j := range entry.Joins {
				joins = append(joins, world.JoinRequest{Name: j.Name})
			}
			acts := make([]world.ActionEnvelope, 0, len(entry.Actions))
			for _, ra := range entry.Actions {
				acts = append(acts, world.ActionEnvelope{ActorID: ra.ActorID, Act: ra.Act})
			}

			tick, got := w.StepOnce(joins, entry.Leaves, acts)
			if tick != entry.Tick {
				return checked, fmt.Errorf("internal tick mismatch: stepped=%d entry=%d", tick, entry.Tick)
			}
			checked++
			if got != entry.Digest {
				return checked, fmt.Errorf("digest mismatch at tick %d: got=%s want=%s", tick, got, entry.Digest)
			}
		}
	}
	return checked, nil
}
