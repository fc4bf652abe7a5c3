package world

import (
	"sort"

	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/nitrebed"
)

// reach is how far from an actor a block can be interacted with or broken.
const reach = 6.0

// InteractStart begins a sustained interaction with the block at pos. It
// returns an error code when the interaction cannot start.
func (w *World) InteractStart(a *Actor, pos Vec3i, ctrl bool) string {
	if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) || distance(a.Pos, pos) > reach {
		return protocol.ErrInvalidTarget
	}
	in := nitrebed.Interaction{Ctrl: ctrl, Held: &a.Hand}
	m := w.registry.Materials
	b := w.GetBlock(pos)

	if inst := w.beds[pos]; inst != nil {
		if inst.Full() {
			return protocol.ErrBlocked
		}
		if !nitrebed.CanStartFill(*inst, in, m) {
			return protocol.ErrNoResource
		}
		a.interact = &interaction{Pos: pos, StartTick: w.tick.Load()}
		return ""
	}
	if _, ok := w.registry.Source(b); ok {
		if !nitrebed.CanStartConversion(in, m) {
			return protocol.ErrNoResource
		}
		a.interact = &interaction{Pos: pos, Source: true, StartTick: w.tick.Load()}
		return ""
	}
	return protocol.ErrInvalidTarget
}

// InteractStep runs one tick of a sustained bed interaction and reports
// whether the interaction should go on.
func (w *World) InteractStep(a *Actor) bool {
	it := a.interact
	if it == nil {
		return false
	}
	if it.Source {
		// Converted on release.
		return true
	}
	inst := w.beds[it.Pos]
	if inst == nil || inst.Full() {
		return false
	}
	n := &actorNotifier{w: w, a: a, pos: it.Pos}
	if !nitrebed.Fill(inst, &a.Hand, w.registry.Materials, n) {
		return false
	}
	inst.TotalHoursLastGrowth = w.TotalHours()
	w.playSound(it.Pos)
	w.emit(BedEvent{
		Kind:     EventFill,
		BedID:    it.Pos.BedID(),
		Pos:      it.Pos.ToArray(),
		Actor:    a.ID,
		Block:    w.catalogs.BlockName(w.GetBlock(it.Pos)),
		Item:     n.item,
		Units:    n.units,
		Material: inst.OrganicMaterial,
		Moisture: inst.MoistureLevel,
	})
	return !inst.Full()
}

// InteractStop releases the active interaction. Releasing on a source block
// converts it into a bed if the held stack pays for it.
func (w *World) InteractStop(a *Actor) bool {
	it := a.interact
	a.interact = nil
	if it == nil || !it.Source {
		return false
	}
	return w.convertSource(a, it.Pos)
}

func (w *World) convertSource(a *Actor, pos Vec3i) bool {
	src, ok := w.registry.Source(w.GetBlock(pos))
	if !ok {
		return false
	}
	n := &actorNotifier{w: w, a: a, pos: pos}
	moisture := w.FarmlandMoisture(pos)
	bed, ok := nitrebed.Convert(src, &a.Hand, w.registry.Materials, moisture, w.TotalHours(), n)
	if !ok {
		return false
	}
	w.SetBlock(pos, src.Bed)
	if inst := w.beds[pos]; inst != nil {
		*inst = bed
	}
	w.playSound(pos)
	w.emit(BedEvent{
		Kind:     EventConvert,
		BedID:    pos.BedID(),
		Pos:      pos.ToArray(),
		Actor:    a.ID,
		Block:    w.catalogs.BlockName(src.Bed),
		Item:     n.item,
		Units:    n.units,
		Material: bed.OrganicMaterial,
		Moisture: bed.MoistureLevel,
	})
	return true
}

// systemInteractions steps every sustained bed interaction once per tick.
func (w *World) systemInteractions(nowTick uint64) {
	ids := make([]string, 0, len(w.actors))
	for id, a := range w.actors {
		if a.interact != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := w.actors[id]
		pos := a.interact.Pos
		if !w.InteractStep(a) {
			if a.interact != nil && !a.interact.Source {
				a.interact = nil
				a.AddEvent(protocol.Event{"t": nowTick, "type": "INTERACT_END", "pos": pos.ToArray()})
			}
		}
	}
}

func (w *World) playSound(pos Vec3i) {
	t := w.cfg.NitreBed
	if t.Sound == "" {
		return
	}
	w.broadcast(pos, t.SoundRange, protocol.Event{
		"t":     w.tick.Load(),
		"type":  "SOUND",
		"sound": t.Sound,
		"pos":   pos.ToArray(),
	})
}

// actorNotifier turns fill side effects into client events for the acting
// player and remembers what was consumed.
type actorNotifier struct {
	w   *World
	a   *Actor
	pos Vec3i

	item  string
	units int
}

func (n *actorNotifier) LiquidMoved(substance string, items int) {
	n.item, n.units = substance, items
	n.a.AddEvent(protocol.Event{
		"t":         n.w.tick.Load(),
		"type":      "LIQUID_MOVED",
		"substance": substance,
		"items":     items,
		"pos":       n.pos.ToArray(),
	})
}

func (n *actorNotifier) ItemTaken(item string, units int) {
	n.item, n.units = item, units
	n.a.AddEvent(protocol.Event{
		"t":     n.w.tick.Load(),
		"type":  "ITEM_TAKEN",
		"item":  item,
		"units": units,
		"pos":   n.pos.ToArray(),
	})
}
