package world

import (
	"container/heap"
	"math/rand"

	"saltpeter.ai/internal/sim/world/kernel/model"
)

// bedScheduler fires every registered bed at its own fixed interval. Each
// bed draws its interval once, base plus up to jitter milliseconds.
type bedScheduler struct {
	baseMs   int64
	jitterMs int
	rng      *rand.Rand

	q       schedQueue
	entries map[model.Vec3i]*schedEntry
}

type schedEntry struct {
	pos      model.Vec3i
	interval int64
	due      int64
	index    int
}

func newBedScheduler(baseMs, jitterMs int, rng *rand.Rand) *bedScheduler {
	return &bedScheduler{
		baseMs:   int64(baseMs),
		jitterMs: jitterMs,
		rng:      rng,
		entries:  map[model.Vec3i]*schedEntry{},
	}
}

func (s *bedScheduler) Len() int { return len(s.entries) }

// Add registers pos if it is not scheduled yet. The first firing is one
// interval after nowMs.
func (s *bedScheduler) Add(pos model.Vec3i, nowMs int64) {
	if _, ok := s.entries[pos]; ok {
		return
	}
	interval := s.baseMs
	if s.jitterMs > 0 {
		interval += int64(s.rng.Intn(s.jitterMs))
	}
	e := &schedEntry{pos: pos, interval: interval, due: nowMs + interval}
	s.entries[pos] = e
	heap.Push(&s.q, e)
}

func (s *bedScheduler) Remove(pos model.Vec3i) {
	e, ok := s.entries[pos]
	if !ok {
		return
	}
	delete(s.entries, pos)
	if e.index >= 0 {
		heap.Remove(&s.q, e.index)
	}
}

// PopDue removes and returns the earliest entry due at or before nowMs.
// The caller hands it back with Requeue if the bed survives.
func (s *bedScheduler) PopDue(nowMs int64) (*schedEntry, bool) {
	if len(s.q) == 0 || s.q[0].due > nowMs {
		return nil, false
	}
	e := heap.Pop(&s.q).(*schedEntry)
	return e, true
}

// Requeue puts a popped entry back at its next firing after nowMs, unless
// the bed was removed while it was out of the queue. Missed firings are
// dropped, not replayed.
func (s *bedScheduler) Requeue(e *schedEntry, nowMs int64) {
	if cur, ok := s.entries[e.pos]; !ok || cur != e {
		return
	}
	e.due += e.interval
	if e.due <= nowMs {
		e.due += ((nowMs-e.due)/e.interval + 1) * e.interval
	}
	heap.Push(&s.q, e)
}

type schedQueue []*schedEntry

func (q schedQueue) Len() int { return len(q) }

func (q schedQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return posLess(q[i].pos, q[j].pos)
}

func (q schedQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *schedQueue) Push(x any) {
	e := x.(*schedEntry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *schedQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

func posLess(a, b model.Vec3i) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
