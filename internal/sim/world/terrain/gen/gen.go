// Package gen holds the column rules of the flat nitre world generator.
package gen

import "saltpeter.ai/internal/sim/world/logic/mathx"

// Patches scatters round farmland patches over the plain. The world is cut into
// Cell x Cell squares; each square hosts at most one patch, present with
// probability Permille/1000, centred at a hashed point inside the square.
type Patches struct {
	Seed     int64
	Cell     int
	Radius   int
	Permille uint64
}

// Contains reports whether column (x,z) lies on a patch. Patches may spill
// into neighbouring squares, so the 3x3 block of squares around x,z is checked.
func (p Patches) Contains(x, z int) bool {
	if p.Cell <= 0 || p.Radius <= 0 || p.Permille == 0 {
		return false
	}
	homeX, homeZ := mathx.FloorDiv(x, p.Cell), mathx.FloorDiv(z, p.Cell)
	for sq := 0; sq < 9; sq++ {
		sx, sz := homeX+sq%3-1, homeZ+sq/3-1
		cx, cz, ok := p.centre(sx, sz)
		if !ok {
			continue
		}
		if dx, dz := x-cx, z-cz; dx*dx+dz*dz <= p.Radius*p.Radius {
			return true
		}
	}
	return false
}

func (p Patches) centre(sx, sz int) (int, int, bool) {
	h := mathx.Hash2(p.Seed, sx, sz)
	if h%1000 >= p.Permille {
		return 0, 0, false
	}
	cell := uint64(p.Cell)
	return sx*p.Cell + int((h>>10)%cell), sz*p.Cell + int((h>>20)%cell), true
}

// NearSpawn reports whether column (x,z) is within radius of the origin. Spawn
// stays plain soil so new actors always find convertible ground.
func NearSpawn(x, z, radius int) bool {
	if radius <= 0 {
		return false
	}
	return int64(x)*int64(x)+int64(z)*int64(z) <= int64(radius)*int64(radius)
}
