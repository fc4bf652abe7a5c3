package world

import (
	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/nitrebed"
)

func (w *World) buildObs(a *Actor, nowTick uint64) protocol.ObsMsg {
	now := w.cal.HoursAt(nowTick)
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            nowTick,
		ActorID:         a.ID,
		TotalHours:      now,
		Self: protocol.SelfObs{
			Pos:  a.Pos.ToArray(),
			Held: a.Hand.obs(),
		},
		Beds:   w.bedsNear(a.Pos, w.cfg.ObsRadius, now),
		Events: a.TakeEvents(),
	}
	if p, ok := a.Interacting(); ok {
		v := p.ToArray()
		obs.Self.Interacting = &v
	}
	if a.Hand.Changed() {
		obs.Self.Status = append(obs.Self.Status, "HELD_CHANGED")
	}
	return obs
}

// bedsNear lists the beds in the cube of radius r around center. It reads
// only loaded chunks.
func (w *World) bedsNear(center Vec3i, r int, now float64) []protocol.BedObs {
	var out []protocol.BedObs
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				p := Vec3i{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				inst := w.beds[p]
				if inst == nil {
					continue
				}
				out = append(out, w.bedObs(p, *inst, now))
			}
		}
	}
	return out
}

func (w *World) bedObs(p Vec3i, inst nitrebed.BedInstance, now float64) protocol.BedObs {
	self, _ := w.chunks.PeekBlock(p.X, p.Y, p.Z)
	above, _ := w.chunks.PeekBlock(p.X, p.Y+1, p.Z)
	o := protocol.BedObs{
		Pos:      p.ToArray(),
		Block:    w.catalogs.BlockName(self),
		Above:    w.catalogs.BlockName(above),
		Material: inst.OrganicMaterial,
	}
	if params, ok := w.registry.Bed(self); ok {
		o.Info = nitrebed.BlockInfo(inst, params, now)
	}
	return o
}

// BlockInfo is the player-facing text for the block at pos.
func (w *World) BlockInfo(pos Vec3i) []string {
	inst := w.beds[pos]
	if inst == nil {
		return nil
	}
	p, ok := w.registry.Bed(w.GetBlock(pos))
	if !ok {
		return nil
	}
	return nitrebed.BlockInfo(*inst, p, w.TotalHours())
}
