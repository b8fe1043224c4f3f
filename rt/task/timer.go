package task

import (
	"math"
	"time"

	"k8s.io/utils/clock"
)

// Timer is the timing discipline of a Job: it decides how elapsed time is measured.
//
// Every tick, a Job calls Advance, consults its Gate, runs the work if admitted, and finally calls
// Settle. Elapsed only grows between two Resets.
type Timer interface {
	// Advance accounts for one tick given the caller-supplied delta (seconds) and returns the
	// delta the work receives unless the gate overrides it.
	Advance(delta float64) float64

	// Elapsed returns the time accumulated since the first tick.
	Elapsed() time.Duration

	// Now returns the current position on the timer's timeline. The difference between two
	// values measures the time between two runs.
	Now() time.Duration

	// Settle marks the end of a tick.
	Settle()

	// Reset returns the timer to its state before the first tick.
	Reset()
}

// AccumulatedTimer returns a Timer that sums caller-supplied deltas and never reads a clock.
// The work receives the caller's delta unchanged.
func AccumulatedTimer() Timer {
	return &accumulatedTimer{}
}

type accumulatedTimer struct {
	seconds float64
}

func (t *accumulatedTimer) Advance(delta float64) float64 {
	t.seconds += delta
	return delta
}

func (t *accumulatedTimer) Elapsed() time.Duration { return seconds(t.seconds) }

func (t *accumulatedTimer) Now() time.Duration { return t.Elapsed() }

func (t *accumulatedTimer) Settle() {}

func (t *accumulatedTimer) Reset() { t.seconds = 0 }

// SampledTimer returns a Timer that measures elapsed time by sampling c, ignoring the
// caller-supplied delta except on the first tick after construction or Reset (no previous sample
// exists yet), where the work receives the caller's delta and Elapsed does not move.
// Afterwards, the work receives the clock interval since the end of the previous tick.
func SampledTimer(c clock.PassiveClock) Timer {
	if c == nil {
		panic("task: SampledTimer called with nil clock")
	}
	return &sampledTimer{clock: c, origin: c.Now()}
}

type sampledTimer struct {
	clock  clock.PassiveClock
	origin time.Time

	last    time.Time // end of previous tick; zero means no sample yet
	elapsed time.Duration
}

func (t *sampledTimer) Advance(delta float64) float64 {
	if t.last.IsZero() {
		return delta
	}
	since := t.clock.Since(t.last)
	if since < 0 {
		since = 0
	}
	t.elapsed += since
	return since.Seconds()
}

func (t *sampledTimer) Elapsed() time.Duration { return t.elapsed }

func (t *sampledTimer) Now() time.Duration { return t.clock.Since(t.origin) }

func (t *sampledTimer) Settle() { t.last = t.clock.Now() }

func (t *sampledTimer) Reset() {
	t.last = time.Time{}
	t.elapsed = 0
}

// seconds converts float seconds to a Duration, rounding to the nearest nanosecond so that
// accumulated binary fractions like 0.1+0.2 compare as expected against configured durations.
func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
