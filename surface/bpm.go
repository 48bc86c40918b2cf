package surface

import (
	"math"
	"time"
)

const (
	// MaxTapInterval is the slowest double tap still read as a tempo
	MaxTapInterval = 2 * time.Second

	maxTaps = 2
)

// Tracker derives a tempo from the last two taps
type Tracker struct {
	taps []time.Time
	now  func() time.Time
}

// NewTracker creates a tracker reading time from now (time.Now when nil)
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now}
}

// Tap records a tap at the current time
func (t *Tracker) Tap() {
	t.TapAt(t.now())
}

// TapAt records a tap at a given time, keeping only the most recent two
func (t *Tracker) TapAt(at time.Time) {
	t.taps = append(t.taps, at)
	if len(t.taps) > maxTaps {
		t.taps = t.taps[len(t.taps)-maxTaps:]
	}
}

// Estimate returns the tempo in beats per minute. ok is false with fewer
// than two taps or when they are more than MaxTapInterval apart.
func (t *Tracker) Estimate() (bpm int, ok bool) {
	if len(t.taps) < maxTaps {
		return 0, false
	}
	interval := t.taps[1].Sub(t.taps[0])
	if interval <= 0 || interval > MaxTapInterval {
		return 0, false
	}
	return int(math.Round(60 / interval.Seconds())), true
}
