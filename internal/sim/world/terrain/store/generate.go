package store

import genpkg "saltpeter.ai/internal/sim/world/terrain/gen"

func (s *ChunkStore) GenerateChunk(ch *Chunk) {
	patches := genpkg.Patches{Seed: s.Gen.Seed + 11, Cell: 24, Radius: 3, Permille: s.Gen.FarmlandClusterPermille}
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			wx := ch.CX*16 + x
			wz := ch.CZ*16 + z

			surface := s.Gen.Soil
			if !genpkg.NearSpawn(wx, wz, s.Gen.SpawnClearRadius) && patches.Contains(wx, wz) {
				surface = s.Gen.Farmland
			}

			for y := 0; y < ch.Height; y++ {
				b := s.Gen.Air
				switch {
				case y == 0:
					b = s.Gen.Bedrock
				case y < s.Gen.GroundY-1:
					b = s.Gen.Stone
				case y == s.Gen.GroundY-1:
					b = surface
				}
				ch.Blocks[ch.index(x, y, z)] = b
			}
		}
	}
}

// SurfaceY is the height of the top solid layer of a freshly generated column.
func (s *ChunkStore) SurfaceY() int { return s.Gen.GroundY - 1 }
