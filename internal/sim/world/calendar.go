package world

// Calendar maps simulation ticks to in-game hours.
type Calendar struct {
	StartHours     float64
	SecondsPerHour float64
	TickRateHz     int
}

func (c Calendar) HoursAt(tick uint64) float64 {
	if c.SecondsPerHour <= 0 || c.TickRateHz <= 0 {
		return c.StartHours
	}
	return c.StartHours + float64(tick)/float64(c.TickRateHz)/c.SecondsPerHour
}

// TicksForHours is the number of ticks that make up hours of game time.
func (c Calendar) TicksForHours(hours float64) uint64 {
	if hours <= 0 {
		return 0
	}
	return uint64(hours*c.SecondsPerHour*float64(c.TickRateHz) + 0.5)
}

// MillisAt is the real-time clock the bed scheduler runs on.
func (c Calendar) MillisAt(tick uint64) int64 {
	if c.TickRateHz <= 0 {
		return 0
	}
	return int64(tick) * 1000 / int64(c.TickRateHz)
}
