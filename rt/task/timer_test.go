package task

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAccumulatedTimer_SumsDeltas(t *testing.T) {
	t.Parallel()

	tm := AccumulatedTimer()
	assert.Equal(t, 0.1, tm.Advance(0.1))
	tm.Advance(0.2)
	assert.Equal(t, 300*time.Millisecond, tm.Elapsed())
	assert.Equal(t, tm.Elapsed(), tm.Now())

	tm.Reset()
	assert.Zero(t, tm.Elapsed())
}

func TestSampledTimer_FirstTickUsesCallerDelta(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakePassiveClock(epoch)
	tm := SampledTimer(fc)

	assert.Equal(t, 0.5, tm.Advance(0.5))
	assert.Zero(t, tm.Elapsed())
	tm.Settle()

	fc.SetTime(epoch.Add(250 * time.Millisecond))
	assert.Equal(t, 0.25, tm.Advance(99))
	assert.Equal(t, 250*time.Millisecond, tm.Elapsed())
	tm.Settle()

	tm.Reset()
	assert.Zero(t, tm.Elapsed())
	assert.Equal(t, 7.0, tm.Advance(7))
}

func TestSampledTimer_NilClockPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { SampledTimer(nil) })
}

func TestAfter_Accumulated_RunsOnceWhenWaitReached(t *testing.T) {
	t.Parallel()

	var deltas []float64
	j := After(time.Second, func(d float64) error {
		deltas = append(deltas, d)
		return nil
	})

	tickN(j, 3, 0.25)
	require.Empty(t, deltas)
	require.False(t, j.Finished())

	j.Execute(0.25)
	require.Equal(t, []float64{0.25}, deltas)
	require.True(t, j.Finished())
}

func TestAfter_ZeroWaitRunsOnFirstTick(t *testing.T) {
	t.Parallel()

	var n int
	j := After(0, counter(&n))
	j.Execute(0)
	assert.Equal(t, 1, n)
	assert.True(t, j.Finished())
}

func TestAfter_Sampled_IgnoresCallerDelta(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakePassiveClock(epoch)
	var deltas []float64
	j := After(time.Second, func(d float64) error {
		deltas = append(deltas, d)
		return nil
	}, WithClock(fc))

	j.Execute(100) // no previous sample: elapsed stays 0
	require.False(t, j.Finished())

	fc.SetTime(epoch.Add(500 * time.Millisecond))
	j.Execute(100)
	require.False(t, j.Finished())
	require.Equal(t, 500*time.Millisecond, j.Elapsed())

	fc.SetTime(epoch.Add(time.Second))
	j.Execute(100)
	require.True(t, j.Finished())
	require.Equal(t, []float64{0.5}, deltas)
}

func TestFor_Accumulated_RunsWhileBelowLimit(t *testing.T) {
	t.Parallel()

	var n int
	j := For(time.Second, counter(&n))
	tickN(j, 3, 0.25)
	require.Equal(t, 3, n)
	require.False(t, j.Finished())

	j.Execute(0.25) // elapsed reaches 1s: skipped and finished
	require.Equal(t, 3, n)
	require.True(t, j.Finished())

	j.Execute(0.25)
	require.Equal(t, 3, n)
	require.True(t, j.Finished())
}

func TestFor_Sampled(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakeClock(epoch)
	var n int
	j := For(100*time.Millisecond, counter(&n), WithClock(fc))
	for i := 0; i < 20; i++ {
		j.Execute(0)
		fc.Step(10 * time.Millisecond)
	}
	// elapsed at tick i is i*10ms; ticks with elapsed 0..90ms run.
	assert.Equal(t, 10, n)
	assert.True(t, j.Finished())
}

func TestRepeat_Accumulated_PeriodWithoutDelay(t *testing.T) {
	t.Parallel()

	var deltas []float64
	j := Repeat(time.Second, func(d float64) error {
		deltas = append(deltas, d)
		return nil
	})
	tickN(j, 19, 0.25) // observation window below 5s

	assert.Equal(t, []float64{0, 1, 1, 1, 1}, deltas)
	assert.False(t, j.Finished())
}

func TestRepeat_Accumulated_WithDelay(t *testing.T) {
	t.Parallel()

	var n int
	j := Repeat(time.Second, counter(&n), WithDelay(time.Second))
	tickN(j, 3, 0.25)
	require.Zero(t, n)

	tickN(j, 16, 0.25) // elapsed 4.75s: runs at 1, 2, 3, 4
	assert.Equal(t, 4, n)
}

func TestRepeat_RunCountMatchesWindow(t *testing.T) {
	t.Parallel()

	const (
		tickMs   = 1
		windowMs = 1000
	)
	cases := []struct {
		delay, period int // ms
	}{
		{0, 10}, {0, 100}, {10, 10}, {250, 100}, {500, 50},
	}
	for _, tc := range cases {
		fc := testingclock.NewFakeClock(epoch)
		var n int
		j := Repeat(time.Duration(tc.period)*time.Millisecond, counter(&n),
			WithDelay(time.Duration(tc.delay)*time.Millisecond),
			WithClock(fc),
		)
		for ms := 0; ms < windowMs; ms += tickMs {
			j.Execute(0)
			fc.Step(tickMs * time.Millisecond)
		}
		want := int(math.Round(float64(windowMs-tc.delay) / float64(tc.period)))
		assert.Equal(t, want, n, "delay=%dms period=%dms", tc.delay, tc.period)
	}
}

func TestRepeat_InvalidPeriodPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Repeat(0, func(float64) error { return nil }) })
	require.Panics(t, func() { Repeat(time.Second, func(float64) error { return nil }, WithDelay(-1)) })
}

func TestRepeat_WithCompletionLimit(t *testing.T) {
	t.Parallel()

	var n int
	j := Repeat(time.Second, counter(&n), WithCompletion(Limit(3)))
	tickN(j, 12, 0.25)
	assert.Equal(t, 3, n)
	assert.True(t, j.Finished())
}

func TestEvery_Sampled_PassesClockDelta(t *testing.T) {
	t.Parallel()

	fc := testingclock.NewFakePassiveClock(epoch)
	var deltas []float64
	j := Every(func(d float64) error {
		deltas = append(deltas, d)
		return nil
	}, WithClock(fc))

	j.Execute(0.5)
	fc.SetTime(epoch.Add(125 * time.Millisecond))
	j.Execute(0.5)
	fc.SetTime(epoch.Add(375 * time.Millisecond))
	j.Execute(0.5)

	assert.Equal(t, []float64{0.5, 0.125, 0.25}, deltas)
	assert.Equal(t, 375*time.Millisecond, j.Elapsed())
}

func TestGates_NegativeDurationsPanic(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { WaitGate(-time.Second) })
	require.Panics(t, func() { MaxTimeGate(-time.Second) })
	require.Panics(t, func() { Limit(-1) })
}
