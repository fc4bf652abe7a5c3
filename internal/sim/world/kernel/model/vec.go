package model

import "saltpeter.ai/internal/sim/world/logic/ids"

type Vec3i struct {
	X int
	Y int
	Z int
}

func (v Vec3i) Up() Vec3i { return Vec3i{X: v.X, Y: v.Y + 1, Z: v.Z} }

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3i) ToArray() [3]int { return [3]int{v.X, v.Y, v.Z} }

func Vec3iFromArray(a [3]int) Vec3i { return Vec3i{X: a[0], Y: a[1], Z: a[2]} }

// BedID is the stable key of the bed at v, used in logs and the index.
func (v Vec3i) BedID() string { return ids.BedIDAt(v.X, v.Y, v.Z) }
