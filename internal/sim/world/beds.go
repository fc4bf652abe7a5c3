package world

import "saltpeter.ai/internal/sim/nitrebed"

// systemBeds evaluates every bed whose interval has elapsed, earliest first.
func (w *World) systemBeds(nowTick uint64) {
	nowMs := w.cal.MillisAt(nowTick)
	now := w.cal.HoursAt(nowTick)
	for {
		e, ok := w.sched.PopDue(nowMs)
		if !ok {
			return
		}
		w.evaluateBed(e.pos, now)
		w.sched.Requeue(e, nowMs)
	}
}

func (w *World) evaluateBed(pos Vec3i, now float64) {
	// Transient world: skip silently.
	if !w.chunks.IsLoaded(pos.X, pos.Z) {
		return
	}
	inst := w.beds[pos]
	if inst == nil {
		return
	}
	self, _ := w.chunks.PeekBlock(pos.X, pos.Y, pos.Z)
	p, ok := w.registry.Bed(self)
	if !ok {
		return
	}

	res := nitrebed.Evaluate(*inst, p, pos, worldView{w}, now)
	*inst = res.State
	for _, e := range res.Effects {
		switch e.Kind {
		case nitrebed.EffectExchange:
			w.ExchangeBlock(e.Pos, e.Block)
		case nitrebed.EffectSet:
			w.SetBlock(e.Pos, e.Block)
		}
	}

	ev := BedEvent{
		BedID:    pos.BedID(),
		Pos:      pos.ToArray(),
		Block:    w.catalogs.BlockName(self),
		Material: res.State.OrganicMaterial,
		Moisture: res.State.MoistureLevel,
	}
	switch res.Outcome {
	case nitrebed.OutcomeGrew:
		ev.Kind = EventGrow
		ev.Stage = res.Stage.String()
	case nitrebed.OutcomeDecayed:
		ev.Kind = EventDecay
	case nitrebed.OutcomeDepleted:
		ev.Kind = EventDeplete
	default:
		return
	}
	w.emit(ev)
	if res.Outcome == nitrebed.OutcomeGrew && res.Stage == nitrebed.StageFull {
		w.emit(BedEvent{
			Kind:     EventDeplete,
			BedID:    ev.BedID,
			Pos:      ev.Pos,
			Block:    ev.Block,
			Material: res.State.OrganicMaterial,
			Moisture: res.State.MoistureLevel,
		})
	}
}
