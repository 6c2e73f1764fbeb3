package combat

// Throttle lets an action fire at most once per interval. Times are in
// milliseconds on the client clock.
type Throttle struct {
	interval int64
	last     int64
	fired    bool
}

func NewThrottle(intervalMs int64) *Throttle {
	return &Throttle{interval: intervalMs}
}

// Ready reports whether the interval has elapsed since the last fire and,
// if so, records now as the new fire time.
func (t *Throttle) Ready(now int64) bool {
	if t.fired && now-t.last < t.interval {
		return false
	}
	t.last = now
	t.fired = true
	return true
}

// Reset forgets the last fire so the next Ready succeeds.
func (t *Throttle) Reset() {
	t.fired = false
}
