// Package effects drives the gallery's timer-based ambient visuals
// (lightning strikes, flickers). The timing logic lives behind a small
// interface so the distributions are testable; the effects themselves carry
// no business rules.
package effects

import (
	"context"
	"math/rand"
	"time"
)

// Reference timings for the storm overlay.
const (
	StormMinInterval   = 1500 * time.Millisecond
	StormMaxInterval   = 4500 * time.Millisecond
	FlickerMinInterval = 800 * time.Millisecond
	FlickerMaxInterval = 2 * time.Second
)

// Scheduler yields the delay until the next effect firing.
type Scheduler interface {
	NextDelay() time.Duration
}

// RandomScheduler draws delays uniformly from [min, max).
type RandomScheduler struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

func NewRandomScheduler(min, max time.Duration) *RandomScheduler {
	if max < min {
		max = min
	}
	return &RandomScheduler{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func NewStormScheduler() *RandomScheduler {
	return NewRandomScheduler(StormMinInterval, StormMaxInterval)
}

func NewFlickerScheduler() *RandomScheduler {
	return NewRandomScheduler(FlickerMinInterval, FlickerMaxInterval)
}

func (s *RandomScheduler) NextDelay() time.Duration {
	if s.max == s.min {
		return s.min
	}
	return s.min + time.Duration(s.rng.Int63n(int64(s.max-s.min)))
}

// Loop fires on the scheduler's cadence until ctx is done.
func Loop(ctx context.Context, s Scheduler, fire func()) {
	timer := time.NewTimer(s.NextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			fire()
			timer.Reset(s.NextDelay())
		}
	}
}
