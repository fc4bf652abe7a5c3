package snapshotcodec

import "math"

// FiniteRecord copies a flat record, dropping empty keys and values that
// cannot round-trip through a snapshot.
func FiniteRecord(src map[string]float64) map[string]float64 {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		if k == "" || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		dst[k] = v
	}
	if len(dst) == 0 {
		return nil
	}
	return dst
}
