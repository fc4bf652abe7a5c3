package store

import (
	"sort"

	"saltpeter.ai/internal/sim/world/logic/mathx"
)

func (s *ChunkStore) InBounds(x, y, z int) bool {
	if y < 0 || y >= s.Gen.Height {
		return false
	}
	if s.Gen.BoundaryR > 0 {
		if x < -s.Gen.BoundaryR || x > s.Gen.BoundaryR || z < -s.Gen.BoundaryR || z > s.Gen.BoundaryR {
			return false
		}
	}
	return true
}

func chunkOf(x, z int) (ChunkKey, int, int) {
	return ChunkKey{CX: mathx.FloorDiv(x, 16), CZ: mathx.FloorDiv(z, 16)}, mathx.Mod(x, 16), mathx.Mod(z, 16)
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.Chunks))
	for k := range s.Chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

// IsLoaded reports whether the chunk holding (x,z) is resident.
func (s *ChunkStore) IsLoaded(x, z int) bool {
	k, _, _ := chunkOf(x, z)
	_, ok := s.Chunks[k]
	return ok
}

// Unload drops a resident chunk. Its blocks are gone until regenerated.
func (s *ChunkStore) Unload(k ChunkKey) {
	delete(s.Chunks, k)
}

func (s *ChunkStore) GetBlock(x, y, z int) uint16 {
	if !s.InBounds(x, y, z) {
		return s.Gen.Air
	}
	k, lx, lz := chunkOf(x, z)
	ch := s.GetOrGenChunk(k.CX, k.CZ)
	return ch.Get(lx, y, lz)
}

// PeekBlock reads without generating; unloaded positions read as air.
func (s *ChunkStore) PeekBlock(x, y, z int) (uint16, bool) {
	if !s.InBounds(x, y, z) {
		return s.Gen.Air, false
	}
	k, lx, lz := chunkOf(x, z)
	ch, ok := s.Chunks[k]
	if !ok {
		return s.Gen.Air, false
	}
	return ch.Get(lx, y, lz), true
}

func (s *ChunkStore) SetBlock(x, y, z int, b uint16) {
	if !s.InBounds(x, y, z) {
		return
	}
	k, lx, lz := chunkOf(x, z)
	ch := s.GetOrGenChunk(k.CX, k.CZ)
	ch.Set(lx, y, lz, b)
}

func (s *ChunkStore) GetOrGenChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	if ch, ok := s.Chunks[k]; ok {
		return ch
	}
	ch := &Chunk{
		CX:     cx,
		CZ:     cz,
		Height: s.Gen.Height,
		Blocks: make([]uint16, 16*16*s.Gen.Height),
	}
	s.GenerateChunk(ch)
	ch.dirty = true
	_ = ch.Digest()
	s.Chunks[k] = ch
	return ch
}
