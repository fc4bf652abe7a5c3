package world

type StatsBucket struct {
	Grows       int `json:"grows"`
	Decays      int `json:"decays"`
	Depletions  int `json:"depletions"`
	Fills       int `json:"fills"`
	Conversions int `json:"conversions"`
	Breaks      int `json:"breaks"`
}

// BedStats keeps rolling counts of bed events over a fixed window.
type BedStats struct {
	bucketTicks uint64
	windowTicks uint64

	buckets []StatsBucket
	curIdx  int
	curBase uint64 // start tick (inclusive) of current bucket
}

func NewBedStats(bucketTicks, windowTicks uint64) *BedStats {
	if bucketTicks <= 0 {
		bucketTicks = 300
	}
	if windowTicks < bucketTicks {
		windowTicks = bucketTicks
	}
	n := int(windowTicks / bucketTicks)
	if n < 1 {
		n = 1
	}
	return &BedStats{
		bucketTicks: bucketTicks,
		windowTicks: uint64(n) * bucketTicks,
		buckets:     make([]StatsBucket, n),
	}
}

func (s *BedStats) rotate(nowTick uint64) {
	if s == nil {
		return
	}
	// Move forward until nowTick is in [curBase, curBase+bucketTicks).
	if nowTick >= s.curBase+s.windowTicks {
		for i := range s.buckets {
			s.buckets[i] = StatsBucket{}
		}
		s.curBase = nowTick - nowTick%s.bucketTicks
		return
	}
	for nowTick >= s.curBase+s.bucketTicks {
		s.curIdx = (s.curIdx + 1) % len(s.buckets)
		s.buckets[s.curIdx] = StatsBucket{}
		s.curBase += s.bucketTicks
	}
}

func (s *BedStats) Record(nowTick uint64, kind string) {
	if s == nil {
		return
	}
	s.rotate(nowTick)
	b := &s.buckets[s.curIdx]
	switch kind {
	case EventGrow:
		b.Grows++
	case EventDecay:
		b.Decays++
	case EventDeplete:
		b.Depletions++
	case EventFill:
		b.Fills++
	case EventConvert:
		b.Conversions++
	case EventBreak:
		b.Breaks++
	}
}

func (s *BedStats) WindowTicks() uint64 {
	if s == nil {
		return 0
	}
	return s.windowTicks
}

func (s *BedStats) Summarize(nowTick uint64) StatsBucket {
	if s == nil {
		return StatsBucket{}
	}
	s.rotate(nowTick)
	var out StatsBucket
	for _, b := range s.buckets {
		out.Grows += b.Grows
		out.Decays += b.Decays
		out.Depletions += b.Depletions
		out.Fills += b.Fills
		out.Conversions += b.Conversions
		out.Breaks += b.Breaks
	}
	return out
}
