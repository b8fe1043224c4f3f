package task

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/evan-idocoding/ztick/rt/safego"
)

// Job is the Task implementation provided by this package.
//
// A Job combines user work (Func) with three strategies:
//   - Timer: how elapsed time is measured (AccumulatedTimer or SampledTimer).
//   - Gate: whether the work runs on a given tick and with which delta.
//   - Completion: when the job is finished based on its run count.
//
// Each Execute runs the before-process hook, the gated work and the after-process hook, in that
// order. Completion is checked right after the work, so a failing after-process hook does not
// keep a bounded job alive. The first failure (returned error or panic) ends the tick: it is
// stored (Err), logged at error level, and handed to the OnError hook. A failure never finishes
// the job by itself.
//
// A Job is not safe for concurrent use.
type Job struct {
	name string
	fn   Func
	log  logr.Logger
	next Task

	timer      Timer
	gate       Gate
	completion Completion

	beforeProcess func() error
	afterProcess  func() error
	onError       func(err error)
	onCreate      func()
	onDispose     func()

	runs     int
	finished bool
	err      error
}

// New creates a Job from fn and opts. Without WithGate/WithCompletion/WithClock it runs every
// tick, never finishes on its own, and accumulates caller deltas.
//
// fn must not be nil; invalid configuration panics.
func New(fn Func, opts ...Option) *Job {
	return newJob(fn, opts, nil)
}

func newJob(fn Func, opts []Option, preset func(c *jobConfig)) *Job {
	if fn == nil {
		panic("task: Job Func is nil")
	}
	c := defaultJobConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if preset != nil {
		preset(&c)
	}
	if c.timer == nil {
		c.timer = AccumulatedTimer()
	}
	if c.gate == nil {
		c.gate = AlwaysGate()
	}
	if c.completion == nil {
		c.completion = Unlimited()
	}
	c.name = mustName(c.name)

	log := c.logger.WithName("task")
	if c.name != "" {
		log = log.WithValues("task", c.name)
	}

	j := &Job{
		name:          c.name,
		fn:            fn,
		log:           log,
		next:          c.next,
		timer:         c.timer,
		gate:          c.gate,
		completion:    c.completion,
		beforeProcess: c.beforeProcess,
		afterProcess:  c.afterProcess,
		onError:       c.onError,
		onCreate:      c.onCreate,
		onDispose:     c.onDispose,
	}
	j.finished = j.completion.Done(0)
	return j
}

// Execute advances the job by one tick. delta is in seconds. A finished job ignores the tick.
func (j *Job) Execute(delta float64) {
	if j.finished {
		return
	}
	err := safego.Call(func() error { return j.tick(delta) })
	if err == nil {
		return
	}
	j.err = err
	j.log.Error(err, "task failed", "runs", j.runs)
	if j.onError != nil {
		j.runHook("OnError", func() { j.onError(err) })
	}
}

func (j *Job) tick(delta float64) error {
	if j.beforeProcess != nil {
		if err := j.beforeProcess(); err != nil {
			return err
		}
	}
	if err := j.step(delta); err != nil {
		return err
	}
	if !j.finished && j.completion.Done(j.runs) {
		j.finished = true
	}
	if j.afterProcess != nil {
		return j.afterProcess()
	}
	return nil
}

// step is the gated work for one tick. The timer is settled even when the work fails.
func (j *Job) step(delta float64) error {
	d := j.timer.Advance(delta)
	defer j.timer.Settle()

	dec := j.gate.Open(j.timer, d)
	if dec.Finish {
		j.finished = true
	}
	if !dec.Run {
		return nil
	}
	j.runs++
	return j.fn(dec.Delta)
}

// Added calls the OnCreate hook. A panic in the hook is recovered and logged.
func (j *Job) Added() { j.runHook("OnCreate", j.onCreate) }

// Removed calls the OnDispose hook. A panic in the hook is recovered and logged.
func (j *Job) Removed() { j.runHook("OnDispose", j.onDispose) }

func (j *Job) runHook(hook string, fn func()) {
	if fn == nil {
		return
	}
	safego.Run(fn,
		safego.WithName(j.name),
		safego.WithTag("hook", hook),
		safego.WithLogger(j.log),
	)
}

// Finished reports whether the job is done.
func (j *Job) Finished() bool { return j.finished }

// Finish marks the job as finished. It is the way Until jobs (and plain timed jobs) end.
func (j *Job) Finish() { j.finished = true }

// Reset clears the captured error, the run count, the timer and the gate. Configuration (hooks,
// bounds, successor) is kept. A Limit(0) job is finished again right away.
func (j *Job) Reset() {
	j.err = nil
	j.runs = 0
	j.timer.Reset()
	j.gate.Reset()
	j.finished = j.completion.Done(0)
}

// Next returns the successor, or nil.
func (j *Job) Next() Task { return j.next }

// SetNext sets the successor. It is read once, when the executor removes the finished job.
func (j *Job) SetNext(next Task) { j.next = next }

// Name returns the configured name (may be empty).
func (j *Job) Name() string { return j.name }

// Err returns the most recent captured failure, or nil. Reset clears it.
//
// Panics are reported as errors matching safego.ErrPanicked.
func (j *Job) Err() error { return j.err }

// Runs returns how many times the work has been invoked since construction or Reset,
// including failed invocations.
func (j *Job) Runs() int { return j.runs }

// Elapsed returns the time measured by the job's timer since its first tick.
func (j *Job) Elapsed() time.Duration { return j.timer.Elapsed() }
