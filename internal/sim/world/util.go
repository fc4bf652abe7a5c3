package world

import (
	"math"
	"sort"
)

func distance(a, b Vec3i) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func sortPositions(ps []Vec3i) {
	sort.Slice(ps, func(i, j int) bool { return posLess(ps[i], ps[j]) })
}
