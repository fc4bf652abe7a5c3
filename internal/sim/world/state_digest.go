package world

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sort"

	"saltpeter.ai/internal/sim/world/io/digestcodec"
)

// stateDigest hashes everything a replay has to reproduce: loaded chunks,
// bed records, farmland and actors.
func (w *World) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestcodec.WriteU64(h, &tmp, nowTick)
	digestcodec.WriteI64(h, &tmp, w.cfg.Seed)

	for _, k := range w.chunks.LoadedChunkKeys() {
		ch := w.chunks.Chunks[k]
		digestcodec.WriteI64(h, &tmp, int64(k.CX))
		digestcodec.WriteI64(h, &tmp, int64(k.CZ))
		d := ch.Digest()
		h.Write(d[:])
	}

	for _, p := range w.BedPositions() {
		digestPos(h, &tmp, p)
		digestcodec.WriteSortedFloatMap(h, &tmp, w.beds[p].Record())
	}

	farm := make([]Vec3i, 0, len(w.farmland))
	for p := range w.farmland {
		farm = append(farm, p)
	}
	sortPositions(farm)
	for _, p := range farm {
		digestPos(h, &tmp, p)
		digestcodec.WriteU64(h, &tmp, math.Float64bits(w.farmland[p]))
	}

	ids := make([]string, 0, len(w.actors))
	for id := range w.actors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := w.actors[id]
		digestcodec.WriteString(h, a.ID)
		digestPos(h, &tmp, a.Pos)
		digestcodec.WriteString(h, a.Hand.ItemID)
		digestcodec.WriteI64(h, &tmp, int64(a.Hand.Units))
		digestcodec.WriteString(h, a.Hand.Liquid)
		digestcodec.WriteI64(h, &tmp, int64(a.Hand.LiquidItems))
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestPos(h digestWriter, tmp *[8]byte, p Vec3i) {
	digestcodec.WriteI64(h, tmp, int64(p.X))
	digestcodec.WriteI64(h, tmp, int64(p.Y))
	digestcodec.WriteI64(h, tmp, int64(p.Z))
}

type digestWriter interface {
	Write(p []byte) (n int, err error)
}

// StateDigest is the digest of the current tick.
func (w *World) StateDigest() string { return w.stateDigest(w.tick.Load()) }
