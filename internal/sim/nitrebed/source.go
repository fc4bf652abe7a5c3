package nitrebed

// Convert pays for turning a source block into a bed and returns the new bed
// instance. The bed starts empty with its growth timer at now and inherits the
// moisture of the block it replaces. Nothing is consumed when held cannot
// cover src.MaterialRequired.
func Convert(src *SourceParams, held HeldStack, m *Materials, moisture, now float64, n Notifier) (BedInstance, bool) {
	if src == nil {
		return BedInstance{}, false
	}
	if !PayConversion(held, m, src.MaterialRequired, n) {
		return BedInstance{}, false
	}
	bed := NewBed(now)
	bed.MoistureLevel = moisture
	return bed, true
}
