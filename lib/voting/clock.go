package voting

import (
	"time"
)

// Clock provides the logical tick proposals are gated against. The engine
// never reads wall time directly.
type Clock interface {
	Now() uint64
}

// ManualClock is a hand-advanced clock for tests and embedders that drive
// ticks themselves.
type ManualClock struct {
	tick uint64
}

func NewManualClock(tick uint64) *ManualClock {
	return &ManualClock{tick: tick}
}

func (c *ManualClock) Now() uint64 {
	return c.tick
}

func (c *ManualClock) Set(tick uint64) {
	c.tick = tick
}

func (c *ManualClock) Advance(ticks uint64) {
	c.tick += ticks
}

// IntervalClock derives ticks from wall time elapsed since a genesis instant.
type IntervalClock struct {
	Genesis  time.Time
	Interval time.Duration
}

func (c IntervalClock) Now() uint64 {
	elapsed := time.Since(c.Genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.Interval)
}
