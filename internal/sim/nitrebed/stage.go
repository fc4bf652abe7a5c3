package nitrebed

type BlockID = uint16

// NoBlock stands for a position that cannot hold a block. It never matches a
// stage, so a view returning it obstructs growth.
const NoBlock BlockID = 0xFFFF

// Stage tags the growth step that the block above a bed would take next.
type Stage uint8

const (
	StageNone Stage = iota
	StageBud
	StageGrowth
	StageFull
)

func (s Stage) String() string {
	switch s {
	case StageBud:
		return "BUD"
	case StageGrowth:
		return "GROWTH"
	case StageFull:
		return "FULL"
	default:
		return "NONE"
	}
}

// Stages holds the resolved block handles of the growth stack:
// empty -> Bud0 -> Bud1 -> Full.
type Stages struct {
	Air  BlockID
	Bud0 BlockID
	Bud1 BlockID
	Full BlockID

	// Valid is false when any stage block failed to resolve; growth is then disabled.
	Valid bool
}

// Next classifies the block above a bed and returns the block it grows into.
// Anything that is not air or an intermediate bud obstructs growth.
func (s Stages) Next(above BlockID) (Stage, BlockID, bool) {
	if !s.Valid {
		return StageNone, 0, false
	}
	switch above {
	case s.Bud0:
		return StageGrowth, s.Bud1, true
	case s.Bud1:
		return StageFull, s.Full, true
	case s.Air:
		return StageBud, s.Bud0, true
	}
	return StageNone, 0, false
}

// IsCascading reports whether the block above has no support without its bed.
// A fully grown block stands on its own.
func (s Stages) IsCascading(above BlockID) bool {
	return s.Valid && (above == s.Bud0 || above == s.Bud1)
}
