package world

import (
	"fmt"
	"sort"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/world/io/snapshotcodec"
	"saltpeter.ai/internal/sim/world/logic/ids"
	"saltpeter.ai/internal/sim/world/terrain/store"
)

// ExportSnapshot captures the world at nowTick. It must run on the world
// goroutine.
func (w *World) ExportSnapshot(nowTick uint64) snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: 1,
			WorldID: w.cfg.ID,
			Tick:    nowTick,
		},
		Seed:           w.cfg.Seed,
		TickRate:       w.cfg.TickRateHz,
		Height:         w.cfg.Height,
		GroundY:        w.cfg.GroundY,
		BoundaryR:      w.cfg.BoundaryR,
		TotalHours:     w.cal.HoursAt(nowTick),
		SecondsPerHour: w.cal.SecondsPerHour,
		Chunks:         store.ExportLoadedChunks(w.chunks.Chunks, w.chunks.LoadedChunkKeys()),
		Counters:       snapshot.CountersV1{NextActor: w.nextActorNum.Load()},
	}

	for _, p := range w.BedPositions() {
		snap.Beds = append(snap.Beds, snapshot.BedV1{
			Pos:    p.ToArray(),
			Record: snapshotcodec.FiniteRecord(w.beds[p].Record()),
		})
	}

	farm := make([]Vec3i, 0, len(w.farmland))
	for p := range w.farmland {
		farm = append(farm, p)
	}
	sortPositions(farm)
	for _, p := range farm {
		snap.Farmland = append(snap.Farmland, snapshot.FarmlandV1{Pos: p.ToArray(), Moisture: w.farmland[p]})
	}

	actorIDs := make([]string, 0, len(w.actors))
	for id := range w.actors {
		actorIDs = append(actorIDs, id)
	}
	sort.Strings(actorIDs)
	for _, id := range actorIDs {
		a := w.actors[id]
		snap.Actors = append(snap.Actors, snapshot.ActorV1{
			ID:              a.ID,
			Name:            a.Name,
			Pos:             a.Pos.ToArray(),
			HeldItem:        a.Hand.ItemID,
			HeldCount:       a.Hand.Units,
			HeldLiquid:      a.Hand.Liquid,
			HeldLiquidItems: a.Hand.LiquidItems,
		})
	}
	return snap
}

// ImportSnapshot replaces the world state with snap. Beds are rescheduled
// from the import tick in position order; scheduler phases are not persisted.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) error {
	if snap.Header.Version != 1 {
		return fmt.Errorf("unsupported snapshot version: %d", snap.Header.Version)
	}
	if snap.Height != 0 && snap.Height != w.cfg.Height {
		return fmt.Errorf("snapshot height mismatch: got %d want %d", snap.Height, w.cfg.Height)
	}

	gen := w.chunks.Gen
	if snap.Seed != 0 {
		w.cfg.Seed = snap.Seed
		gen.Seed = snap.Seed
	}
	chunks, err := store.ImportChunks(gen, snap.Chunks)
	if err != nil {
		return fmt.Errorf("import chunks: %w", err)
	}
	w.chunks = chunks
	w.tick.Store(snap.Header.Tick)

	// Keep the game clock continuous even if seconds_per_hour was retuned.
	w.cal.StartHours = 0
	w.cal.StartHours = snap.TotalHours - w.cal.HoursAt(snap.Header.Tick)

	w.beds = map[Vec3i]*nitrebed.BedInstance{}
	w.sched = newBedScheduler(w.cfg.Scheduler.BaseIntervalMs, w.cfg.Scheduler.JitterMs, w.sched.rng)
	for _, b := range snap.Beds {
		p := Vec3i{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}
		blk, _ := w.chunks.PeekBlock(p.X, p.Y, p.Z)
		if !w.registry.IsBed(blk) {
			w.log.Printf("snapshot: dropping bed at %v on non-bed block %q", b.Pos, w.catalogs.BlockName(blk))
			continue
		}
		w.placeBed(p, nitrebed.LoadRecord(b.Record))
	}
	// Beds placed in chunks without a record start fresh.
	for _, k := range w.chunks.LoadedChunkKeys() {
		w.adoptChunkBeds(k)
	}

	w.farmland = map[Vec3i]float64{}
	for _, f := range snap.Farmland {
		w.farmland[Vec3i{X: f.Pos[0], Y: f.Pos[1], Z: f.Pos[2]}] = f.Moisture
	}

	w.actors = map[string]*Actor{}
	w.clients = map[string]*clientState{}
	maxActor := snap.Counters.NextActor
	for _, av := range snap.Actors {
		a := &Actor{
			ID:   av.ID,
			Name: av.Name,
			Pos:  Vec3i{X: av.Pos[0], Y: av.Pos[1], Z: av.Pos[2]},
		}
		a.Hand = Slot{ItemID: av.HeldItem, Units: av.HeldCount, Liquid: av.HeldLiquid, LiquidItems: av.HeldLiquidItems}
		a.Hand.bind(w.catalogs, w.registry.Materials)
		w.actors[a.ID] = a
		if n, ok := ids.ParseActorNum(a.ID); ok && n > maxActor {
			maxActor = n
		}
	}
	w.nextActorNum.Store(maxActor)
	w.pending = w.pending[:0]
	return nil
}

// adoptChunkBeds registers a fresh bed for every bed block in the chunk that
// has no state yet.
func (w *World) adoptChunkBeds(k store.ChunkKey) {
	ch := w.chunks.Chunks[k]
	if ch == nil {
		return
	}
	now := w.TotalHours()
	for y := 0; y < ch.Height; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				if !w.registry.IsBed(ch.Get(x, y, z)) {
					continue
				}
				p := Vec3i{X: k.CX*16 + x, Y: y, Z: k.CZ*16 + z}
				if w.beds[p] == nil {
					w.placeBed(p, nitrebed.NewBed(now))
				}
			}
		}
	}
}
