package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(0)
	require.Equal(t, uint64(0), c.Now())

	c.Advance(3)
	require.Equal(t, uint64(3), c.Now())

	c.Set(100)
	require.Equal(t, uint64(100), c.Now())
}

func TestIntervalClock(t *testing.T) {
	c := IntervalClock{
		Genesis:  time.Now().Add(-10 * time.Second),
		Interval: time.Second,
	}
	require.True(t, c.Now() >= 10)

	// ticks before genesis report zero
	c.Genesis = time.Now().Add(time.Hour)
	require.Equal(t, uint64(0), c.Now())
}
