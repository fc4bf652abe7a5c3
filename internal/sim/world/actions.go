package world

import (
	"fmt"

	"saltpeter.ai/internal/protocol"
)

func (w *World) applyAct(a *Actor, act protocol.ActMsg, nowTick uint64) {
	if ok, cd := a.RateLimitAllow(nowTick, uint64(w.cfg.ActWindowTicks), w.cfg.ActMax); !ok {
		w.actionResult(a, act, nowTick, protocol.ErrRateLimit, fmt.Sprintf("too many actions; retry in %d ticks", cd))
		return
	}

	pos := Vec3i{X: act.Pos[0], Y: act.Pos[1], Z: act.Pos[2]}
	var code, msg string
	switch act.Op {
	case protocol.OpHold:
		code, msg = w.actHold(a, act)
	case protocol.OpMove:
		if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) {
			code, msg = protocol.ErrInvalidTarget, "out of bounds"
		} else {
			a.Pos = pos
		}
	case protocol.OpPlace:
		code, msg = w.actPlace(a, pos)
	case protocol.OpBreak:
		code, msg = w.actBreak(a, pos)
	case protocol.OpInteractStart:
		if a.interact != nil {
			w.InteractStop(a)
		}
		if code = w.InteractStart(a, pos, act.Ctrl); code != "" {
			msg = "cannot interact"
		}
	case protocol.OpInteractStop:
		w.InteractStop(a)
	default:
		code, msg = protocol.ErrBadRequest, "unknown op "+act.Op
	}
	w.actionResult(a, act, nowTick, code, msg)
}

func (w *World) actionResult(a *Actor, act protocol.ActMsg, nowTick uint64, code, msg string) {
	ev := protocol.Event{"t": nowTick, "type": "ACTION_RESULT", "op": act.Op, "ok": code == ""}
	if act.Ref != "" {
		ev["ref"] = act.Ref
	}
	if code != "" {
		ev["code"] = code
		ev["message"] = msg
	}
	a.AddEvent(ev)
}

// actHold replaces the held stack. It stands in for the inventory, which this
// server does not model.
func (w *World) actHold(a *Actor, act protocol.ActMsg) (string, string) {
	if act.Item == "" {
		a.Hand.Clear()
		a.Hand.MarkChanged()
		return "", ""
	}
	if _, ok := w.catalogs.Item(act.Item); !ok {
		return protocol.ErrBadRequest, "unknown item " + act.Item
	}
	count := act.Count
	if count <= 0 {
		count = 1
	}
	a.Hand.Clear()
	a.Hand.ItemID = act.Item
	a.Hand.Units = count
	if act.Liquid != "" && !a.Hand.fillLiquid(act.Liquid, act.Litres) {
		a.Hand.Clear()
		return protocol.ErrBadRequest, "cannot hold " + act.Liquid + " in " + act.Item
	}
	a.Hand.MarkChanged()
	return "", ""
}

func (w *World) actPlace(a *Actor, pos Vec3i) (string, string) {
	if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) || distance(a.Pos, pos) > reach {
		return protocol.ErrInvalidTarget, "out of reach"
	}
	d, ok := w.catalogs.Item(a.Hand.Item())
	if !ok || d.PlaceAs == "" {
		return protocol.ErrNoResource, "held item cannot be placed"
	}
	b, ok := w.catalogs.BlockID(d.PlaceAs)
	if !ok {
		return protocol.ErrInternal, "unknown block " + d.PlaceAs
	}
	if w.GetBlock(pos) != w.air {
		return protocol.ErrBlocked, "target is not empty"
	}
	w.SetBlock(pos, b)
	a.Hand.TakeUnits(1)
	a.Hand.MarkChanged()
	if inst := w.beds[pos]; inst != nil {
		w.emit(BedEvent{
			Kind:     EventPlace,
			BedID:    pos.BedID(),
			Pos:      pos.ToArray(),
			Actor:    a.ID,
			Block:    d.PlaceAs,
			Material: inst.OrganicMaterial,
		})
	}
	return "", ""
}

func (w *World) actBreak(a *Actor, pos Vec3i) (string, string) {
	if !w.chunks.InBounds(pos.X, pos.Y, pos.Z) || distance(a.Pos, pos) > reach {
		return protocol.ErrInvalidTarget, "out of reach"
	}
	if it := a.interact; it != nil && it.Pos == pos {
		a.interact = nil
	}
	b, ok := w.BreakBlock(pos)
	if !ok {
		return protocol.ErrBlocked, "cannot break " + w.catalogs.BlockName(b)
	}
	w.giveDrop(a, b)
	return "", ""
}

// giveDrop puts the drop of b into the actor's hand when it fits there.
func (w *World) giveDrop(a *Actor, b uint16) {
	def, ok := w.catalogs.BlockDefOf(b)
	if !ok || def.DropsItem == "" {
		return
	}
	switch {
	case a.Hand.Item() == "":
		a.Hand.Clear()
		a.Hand.ItemID = def.DropsItem
		a.Hand.Units = 1
	case a.Hand.Item() == def.DropsItem && !a.Hand.IsContainer():
		a.Hand.Units++
	default:
		return
	}
	a.Hand.MarkChanged()
}
