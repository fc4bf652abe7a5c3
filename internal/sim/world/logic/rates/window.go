// Package rates implements fixed-window action limits counted in ticks.
package rates

// Window counts events inside a fixed window of ticks that restarts with the
// first event after it expires.
type Window struct {
	Start uint64
	Count int
}

// Allow records one event at nowTick. When the window is full it reports the
// ticks left until it reopens. A zero window or max disables the limit.
func (w *Window) Allow(nowTick, window uint64, max int) (ok bool, cooldownTicks uint64) {
	if window == 0 || max <= 0 {
		return true, 0
	}
	if w.Count == 0 || nowTick-w.Start >= window {
		w.Start = nowTick
		w.Count = 0
	}
	w.Count++
	if w.Count <= max {
		return true, 0
	}
	return false, w.Start + window - nowTick
}
