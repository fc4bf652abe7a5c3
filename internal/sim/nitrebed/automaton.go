package nitrebed

import "saltpeter.ai/internal/sim/world/kernel/model"

type EffectKind uint8

const (
	// EffectExchange swaps the block id and keeps the bed state at the position.
	EffectExchange EffectKind = iota + 1
	// EffectSet replaces the block; any bed state at the position is dropped.
	EffectSet
)

type Effect struct {
	Kind  EffectKind
	Pos   model.Vec3i
	Block BlockID
}

type Outcome uint8

const (
	OutcomeIdle Outcome = iota
	OutcomeBlocked
	OutcomeGrew
	OutcomeDecayed
	OutcomeDepleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "BLOCKED"
	case OutcomeGrew:
		return "GROW"
	case OutcomeDecayed:
		return "DECAY"
	case OutcomeDepleted:
		return "DEPLETE"
	default:
		return "IDLE"
	}
}

// View is the read-only slice of the world an evaluation looks at.
type View interface {
	Block(pos model.Vec3i) BlockID
}

// Result is what one evaluation decided. Effects are applied in order.
type Result struct {
	State   BedInstance
	Effects []Effect
	Outcome Outcome
	// Stage is the growth stage produced when Outcome is OutcomeGrew.
	Stage Stage
	// Dirty is set when State or the bed's blocks changed and must be persisted.
	Dirty bool
}

// Evaluate runs one scheduled step of the bed at pos. It does not touch the
// world; the caller applies the returned effects.
func Evaluate(state BedInstance, p *Params, pos model.Vec3i, view View, now float64) Result {
	res := Result{State: state}

	if target := p.Variant(state.HasMaterialStored()); view.Block(pos) != target {
		res.Effects = append(res.Effects, Effect{Kind: EffectExchange, Pos: pos, Block: target})
		res.Dirty = true
	}

	elapsed := state.HoursSinceLastGrowth(now) > p.HoursPerGrowth

	if !state.HasMaterialStored() {
		if elapsed {
			res.Effects = append(res.Effects, Effect{Kind: EffectSet, Pos: pos, Block: p.Depleted})
			res.Outcome = OutcomeDepleted
			res.Dirty = true
		}
		return res
	}

	above := pos.Up()
	stage, next, ok := p.Stages.Next(view.Block(above))
	if !ok {
		res.Outcome = OutcomeBlocked
		return res
	}
	if !elapsed {
		return res
	}

	if state.OrganicMaterial < p.MaterialPerGrowth {
		res.State.AddMaterial(-p.MaterialPerGrowth / 5)
		res.State.TotalHoursLastGrowth = now
		res.Outcome = OutcomeDecayed
		res.Dirty = true
		return res
	}

	res.Effects = append(res.Effects, Effect{Kind: EffectSet, Pos: above, Block: next})
	if stage == StageFull {
		res.Effects = append(res.Effects, Effect{Kind: EffectSet, Pos: pos, Block: p.Depleted})
	}
	res.State.AddMaterial(-p.MaterialPerGrowth)
	res.State.TotalHoursLastGrowth = now
	res.Outcome = OutcomeGrew
	res.Stage = stage
	res.Dirty = true
	return res
}
