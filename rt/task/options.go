package task

import (
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/evan-idocoding/ztick/rt/safego"
)

type jobConfig struct {
	name   string
	logger logr.Logger
	next   Task

	timer      Timer
	gate       Gate
	completion Completion

	// Repeat-only
	delay time.Duration

	// hooks
	beforeProcess func() error
	afterProcess  func() error
	onError       func(err error)
	onCreate      func()
	onDispose     func()
}

// Option configures a Job.
type Option func(*jobConfig)

// WithName sets a human-friendly job name, used in logs, Executor.Snapshot and Executor.Lookup.
//
// Name is normalized by strings.TrimSpace; non-empty names must match [A-Za-z0-9._-] (otherwise
// the constructor panics with an error wrapping ErrInvalidName).
func WithName(name string) Option {
	return func(c *jobConfig) { c.name = name }
}

// WithLogger sets the logger captured failures are reported to.
// Default: slog's default handler through logr.
func WithLogger(l logr.Logger) Option {
	return func(c *jobConfig) { c.logger = l }
}

// WithNext sets the successor added to the executor once the job finishes.
func WithNext(next Task) Option {
	return func(c *jobConfig) { c.next = next }
}

// WithClock switches the job to the clock-sampling discipline (SampledTimer) using c.
func WithClock(c clock.PassiveClock) Option {
	return func(cfg *jobConfig) { cfg.timer = SampledTimer(c) }
}

// WithRealClock is WithClock using the process' monotonic clock.
func WithRealClock() Option {
	return WithClock(clock.RealClock{})
}

// WithTimer sets a custom timing discipline. Default is AccumulatedTimer.
func WithTimer(t Timer) Option {
	return func(c *jobConfig) { c.timer = t }
}

// WithGate sets the gating policy for New. Preset constructors (After, For, Repeat, ...) override it.
func WithGate(g Gate) Option {
	return func(c *jobConfig) { c.gate = g }
}

// WithCompletion sets the completion policy for New and Repeat (e.g. Limit(3) for a job that
// fires three times periodically). The other preset constructors override it.
func WithCompletion(cp Completion) Option {
	return func(c *jobConfig) { c.completion = cp }
}

// WithDelay sets the initial delay of a Repeat job. It is ignored by other constructors.
func WithDelay(d time.Duration) Option {
	return func(c *jobConfig) { c.delay = d }
}

// WithBeforeProcess sets a hook run before the work on every tick. A non-nil error ends the tick
// as a failure.
func WithBeforeProcess(fn func() error) Option {
	return func(c *jobConfig) { c.beforeProcess = fn }
}

// WithAfterProcess sets a hook run after the work on every tick. A non-nil error ends the tick as
// a failure.
func WithAfterProcess(fn func() error) Option {
	return func(c *jobConfig) { c.afterProcess = fn }
}

// WithOnError sets a hook that receives every captured failure. It may call Job.Finish.
func WithOnError(fn func(err error)) Option {
	return func(c *jobConfig) { c.onError = fn }
}

// WithOnCreate sets a hook called when the job is added to an executor.
func WithOnCreate(fn func()) Option {
	return func(c *jobConfig) { c.onCreate = fn }
}

// WithOnDispose sets a hook called when the job is removed from an executor.
func WithOnDispose(fn func()) Option {
	return func(c *jobConfig) { c.onDispose = fn }
}

func defaultJobConfig() jobConfig {
	return jobConfig{
		logger: safego.DefaultLogger(),
	}
}

type executorConfig struct {
	onAdd    func(t Task)
	onRemove func(t Task)

	clock  clock.PassiveClock
	logger logr.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorConfig)

// WithExecutorOnAdd sets a hook called before a task is added (before its Added).
func WithExecutorOnAdd(fn func(t Task)) ExecutorOption {
	return func(c *executorConfig) { c.onAdd = fn }
}

// WithExecutorOnRemove sets a hook called before a task is removed (before it is detached and
// its Removed is called).
func WithExecutorOnRemove(fn func(t Task)) ExecutorOption {
	return func(c *executorConfig) { c.onRemove = fn }
}

// WithExecutorClock sets the clock Executor.Tick measures elapsed time with.
// Default is the process' monotonic clock.
func WithExecutorClock(c clock.PassiveClock) ExecutorOption {
	return func(cfg *executorConfig) { cfg.clock = c }
}

// WithExecutorLogger sets the logger for executor diagnostics and contained task panics.
func WithExecutorLogger(l logr.Logger) ExecutorOption {
	return func(c *executorConfig) { c.logger = l }
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		clock:  clock.RealClock{},
		logger: safego.DefaultLogger(),
	}
}
