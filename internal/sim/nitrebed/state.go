package nitrebed

import "saltpeter.ai/internal/sim/world/logic/mathx"

// Keys of the flat record a bed is persisted as.
const (
	KeyOrganicMaterial      = "organicMaterial"
	KeyTotalHoursLastGrowth = "totalHoursLastGrowth"
	KeyMoistureLevel        = "moistureLevel"
)

// materialEpsilon is the tolerance below which stored material counts as none.
const materialEpsilon = 1e-3

// BedInstance is the durable state of one placed nitre bed.
type BedInstance struct {
	// Fraction of fill capacity, always within [0,1].
	OrganicMaterial float64
	// World hours of the last growth, decay or depletion decision.
	TotalHoursLastGrowth float64
	// Copied from the farmland the bed was made from. Not read by any transition.
	MoistureLevel float64
}

// NewBed returns the state of a bed placed at world time now.
func NewBed(now float64) BedInstance {
	return BedInstance{TotalHoursLastGrowth: now}
}

func (b *BedInstance) SetMaterial(v float64) {
	b.OrganicMaterial = mathx.Clamp01(v)
}

func (b *BedInstance) AddMaterial(delta float64) {
	b.SetMaterial(b.OrganicMaterial + delta)
}

func (b BedInstance) HasMaterialStored() bool {
	return b.OrganicMaterial > materialEpsilon
}

func (b BedInstance) RemainingCapacity() float64 {
	return 1 - b.OrganicMaterial
}

func (b BedInstance) Full() bool {
	return b.OrganicMaterial >= 1
}

// HoursSinceLastGrowth is measured against the world clock reading now.
func (b BedInstance) HoursSinceLastGrowth(now float64) float64 {
	return now - b.TotalHoursLastGrowth
}

// Record flattens the bed for persistence.
func (b BedInstance) Record() map[string]float64 {
	return map[string]float64{
		KeyOrganicMaterial:      b.OrganicMaterial,
		KeyTotalHoursLastGrowth: b.TotalHoursLastGrowth,
		KeyMoistureLevel:        b.MoistureLevel,
	}
}

// LoadRecord restores a bed from a flat record. Absent keys read as zero and
// the material is clamped.
func LoadRecord(rec map[string]float64) BedInstance {
	var b BedInstance
	b.SetMaterial(rec[KeyOrganicMaterial])
	b.TotalHoursLastGrowth = rec[KeyTotalHoursLastGrowth]
	b.MoistureLevel = rec[KeyMoistureLevel]
	return b
}
