package world

import (
	"math"

	"saltpeter.ai/internal/sim/nitrebed"
)

// IsLoaded reports whether the chunk holding pos is resident.
func (w *World) IsLoaded(pos Vec3i) bool { return w.chunks.IsLoaded(pos.X, pos.Z) }

// GetBlock reads the block at pos, generating its chunk if needed.
func (w *World) GetBlock(pos Vec3i) uint16 { return w.chunks.GetBlock(pos.X, pos.Y, pos.Z) }

// SetBlock replaces the block at pos. Any bed state there is dropped, and a
// fresh bed is created when b is a bed type.
func (w *World) SetBlock(pos Vec3i, b uint16) bool {
	return w.replaceBlock(pos, b, false)
}

// ExchangeBlock swaps the block at pos and keeps the bed state when both the
// old and the new block are beds.
func (w *World) ExchangeBlock(pos Vec3i, b uint16) bool {
	return w.replaceBlock(pos, b, true)
}

func (w *World) replaceBlock(pos Vec3i, b uint16, keep bool) bool {
	if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) {
		return false
	}
	prev := w.GetBlock(pos)
	w.chunks.SetBlock(pos.X, pos.Y, pos.Z, b)

	prevBed := w.registry.IsBed(prev)
	nextBed := w.registry.IsBed(b)
	if prevBed && !(keep && nextBed) {
		w.removeBed(pos)
	}
	if nextBed && w.beds[pos] == nil {
		w.placeBed(pos, nitrebed.NewBed(w.TotalHours()))
	}

	if def, ok := w.catalogs.BlockDefOf(prev); ok && def.Farmland != nil {
		delete(w.farmland, pos)
	}
	if def, ok := w.catalogs.BlockDefOf(b); ok && def.Farmland != nil {
		w.farmland[pos] = def.Farmland.Moisture
	}
	return true
}

func (w *World) placeBed(pos Vec3i, inst nitrebed.BedInstance) {
	w.beds[pos] = &inst
	w.sched.Add(pos, w.cal.MillisAt(w.tick.Load()))
}

func (w *World) removeBed(pos Vec3i) {
	delete(w.beds, pos)
	w.sched.Remove(pos)
}

// Bed returns a copy of the bed state at pos.
func (w *World) Bed(pos Vec3i) (nitrebed.BedInstance, bool) {
	inst := w.beds[pos]
	if inst == nil {
		return nitrebed.BedInstance{}, false
	}
	return *inst, true
}

// BedPositions lists every bed in deterministic order.
func (w *World) BedPositions() []Vec3i {
	out := make([]Vec3i, 0, len(w.beds))
	for p := range w.beds {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// BreakBlock removes the block at pos and returns what was there. Breaking a
// bed also breaks a growing bud above it; a fully grown block stays.
func (w *World) BreakBlock(pos Vec3i) (uint16, bool) {
	if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) {
		return 0, false
	}
	b := w.GetBlock(pos)
	if b == w.air {
		return b, false
	}
	def, ok := w.catalogs.BlockDefOf(b)
	if !ok || !def.Breakable {
		return b, false
	}
	var inst nitrebed.BedInstance
	wasBed := w.registry.IsBed(b)
	if wasBed {
		inst, _ = w.Bed(pos)
	}
	w.SetBlock(pos, w.air)

	if wasBed {
		w.emit(BedEvent{
			Kind:     EventBreak,
			BedID:    pos.BedID(),
			Pos:      pos.ToArray(),
			Block:    w.catalogs.BlockName(b),
			Material: inst.OrganicMaterial,
			Moisture: inst.MoistureLevel,
		})
		above := pos.Up()
		if w.registry.Stages().IsCascading(w.GetBlock(above)) {
			w.SetBlock(above, w.air)
		}
	}
	return b, true
}

// FarmlandMoisture is the moisture of the farmland at pos, or 0.
func (w *World) FarmlandMoisture(pos Vec3i) float64 {
	if v, ok := w.farmland[pos]; ok {
		return v
	}
	if def, ok := w.catalogs.BlockDefOf(w.GetBlock(pos)); ok && def.Farmland != nil {
		return def.Farmland.Moisture
	}
	return 0
}

// SetFarmlandMoisture overrides the moisture of the farmland block at pos.
func (w *World) SetFarmlandMoisture(pos Vec3i, v float64) bool {
	def, ok := w.catalogs.BlockDefOf(w.GetBlock(pos))
	if !ok || def.Farmland == nil {
		return false
	}
	w.farmland[pos] = math.Max(0, math.Min(1, v))
	return true
}

// worldView is the read-only view handed to bed evaluations. It never
// generates chunks. Positions outside the world or in non-resident chunks
// read as nitrebed.NoBlock so nothing is grown into them.
type worldView struct{ w *World }

func (v worldView) Block(pos Vec3i) nitrebed.BlockID {
	b, ok := v.w.chunks.PeekBlock(pos.X, pos.Y, pos.Z)
	if !ok {
		return nitrebed.NoBlock
	}
	return b
}
