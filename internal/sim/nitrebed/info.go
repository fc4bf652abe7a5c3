package nitrebed

import (
	"fmt"
	"math"
)

// BlockInfo is the text shown to a player looking at a bed.
func BlockInfo(b BedInstance, p *Params, now float64) []string {
	var lines []string
	if b.HasMaterialStored() {
		lines = append(lines, fmt.Sprintf("Fill %d%%", int(math.Round(b.OrganicMaterial*100))))
	}
	if h, ok := HoursToNextGrowth(b, p, now); ok {
		lines = append(lines, fmt.Sprintf("Hours to next growth %d", int(math.Round(h))))
	}
	return lines
}

// HoursToNextGrowth is ok only while the current growth window is still open.
func HoursToNextGrowth(b BedInstance, p *Params, now float64) (float64, bool) {
	h := p.HoursPerGrowth + b.TotalHoursLastGrowth - now
	if h < 0 || h > p.HoursPerGrowth {
		return 0, false
	}
	return h, true
}
