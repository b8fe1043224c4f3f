package task

import (
	"fmt"
	"time"
)

// Gate is the per-tick gating policy of a Job: whether the work runs this tick and which delta it
// receives.
type Gate interface {
	// Open is called once per tick after the timer advanced. delta is the timer's delta for
	// this tick.
	Open(t Timer, delta float64) Decision

	// Reset clears any state kept between ticks.
	Reset()
}

// Decision is the outcome of Gate.Open.
type Decision struct {
	// Run admits the work for this tick.
	Run bool
	// Delta is passed to the work when Run is true.
	Delta float64
	// Finish marks the job finished. It is applied before the work runs, so a failing run
	// still leaves the job finished.
	Finish bool
}

// AlwaysGate admits every tick with the timer's delta.
func AlwaysGate() Gate { return alwaysGate{} }

type alwaysGate struct{}

func (alwaysGate) Open(_ Timer, delta float64) Decision { return Decision{Run: true, Delta: delta} }

func (alwaysGate) Reset() {}

// WaitGate admits exactly one tick: the first one where the timer's elapsed time reaches wait.
// The job is finished on that tick.
func WaitGate(wait time.Duration) Gate {
	mustNonNegative("wait", wait)
	return waitGate{wait: wait}
}

type waitGate struct {
	wait time.Duration
}

func (g waitGate) Open(t Timer, delta float64) Decision {
	if t.Elapsed() < g.wait {
		return Decision{}
	}
	return Decision{Run: true, Delta: delta, Finish: true}
}

func (waitGate) Reset() {}

// MaxTimeGate admits every tick while the timer's elapsed time is below limit. Once limit is
// reached the job is finished and the work is skipped.
func MaxTimeGate(limit time.Duration) Gate {
	mustNonNegative("max time", limit)
	return maxTimeGate{limit: limit}
}

type maxTimeGate struct {
	limit time.Duration
}

func (g maxTimeGate) Open(t Timer, delta float64) Decision {
	if t.Elapsed() >= g.limit {
		return Decision{Finish: true}
	}
	return Decision{Run: true, Delta: delta}
}

func (maxTimeGate) Reset() {}

// RepeatGate admits nothing until the timer's elapsed time reaches delay. From then on it admits
// the first eligible tick and any tick where at least period passed since the previous run
// (inclusive). The work receives the time since the previous run (0 on the first run), measured on
// the timer's timeline. It never finishes the job.
func RepeatGate(delay, period time.Duration) Gate {
	mustNonNegative("delay", delay)
	if period <= 0 {
		panic(fmt.Sprintf("task: repeat period=%s is invalid (must be > 0)", period))
	}
	return &repeatGate{delay: delay, period: period}
}

type repeatGate struct {
	delay  time.Duration
	period time.Duration

	ran     bool
	lastRun time.Duration
}

func (g *repeatGate) Open(t Timer, _ float64) Decision {
	if t.Elapsed() < g.delay {
		return Decision{}
	}
	now := t.Now()
	if !g.ran {
		g.ran = true
		g.lastRun = now
		return Decision{Run: true}
	}
	since := now - g.lastRun
	if since < g.period {
		return Decision{}
	}
	g.lastRun = now
	return Decision{Run: true, Delta: since.Seconds()}
}

func (g *repeatGate) Reset() {
	g.ran = false
	g.lastRun = 0
}

func mustNonNegative(what string, d time.Duration) {
	if d < 0 {
		panic(fmt.Sprintf("task: %s=%s is invalid (must be >= 0)", what, d))
	}
}
