package task

import "time"

// Once creates a job whose work runs on its first tick only. The job is finished once the work
// succeeds; Finished is still false while the work runs.
func Once(fn Func, opts ...Option) *Job {
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = AlwaysGate()
		c.completion = Limit(1)
	})
}

// Until creates a job whose work runs on every tick until Job.Finish is called (from the work,
// a hook, or the caller). Runs counts the ticks.
func Until(fn Func, opts ...Option) *Job {
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = AlwaysGate()
		c.completion = Unlimited()
	})
}

// Times creates a job whose work runs on every tick and that is finished after n successful
// ticks. Times(0, fn) is finished before its first tick. n < 0 panics.
func Times(n int, fn Func, opts ...Option) *Job {
	cp := Limit(n)
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = AlwaysGate()
		c.completion = cp
	})
}

// Every creates a timed job whose work runs on every tick with the timer's delta.
// Like Until, it ends with Job.Finish.
//
// By default elapsed time accumulates caller deltas; use WithClock/WithRealClock to sample a
// monotonic clock instead. The same applies to After, For and Repeat.
func Every(fn Func, opts ...Option) *Job {
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = AlwaysGate()
		c.completion = Unlimited()
	})
}

// After creates a job whose work runs once, on the first tick where elapsed time reaches wait.
// The job is finished on that tick.
func After(wait time.Duration, fn Func, opts ...Option) *Job {
	g := WaitGate(wait)
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = g
		c.completion = Unlimited()
	})
}

// For creates a job whose work runs on every tick while elapsed time is below limit. On the first
// tick where limit is reached the work is skipped and the job is finished.
func For(limit time.Duration, fn Func, opts ...Option) *Job {
	g := MaxTimeGate(limit)
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = g
		c.completion = Unlimited()
	})
}

// Repeat creates a job whose work runs periodically: first on the earliest tick where elapsed
// time reaches the delay (WithDelay, default 0), then whenever at least period passed since the
// previous run. The work receives the time since its previous run. The job never finishes on
// its own.
//
// period must be > 0.
func Repeat(period time.Duration, fn Func, opts ...Option) *Job {
	return newJob(fn, opts, func(c *jobConfig) {
		c.gate = RepeatGate(c.delay, period)
		if c.completion == nil {
			c.completion = Unlimited()
		}
	})
}
