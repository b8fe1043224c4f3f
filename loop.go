package ztick

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/evan-idocoding/ztick/rt/safego"
	"github.com/evan-idocoding/ztick/rt/task"
)

var (
	// ErrAlreadyStarted indicates Run was called more than once.
	ErrAlreadyStarted = errors.New("ztick: loop already started")
	// ErrNotRunning indicates Do was called before Run.
	ErrNotRunning = errors.New("ztick: loop not running")
	// ErrClosed indicates Do was called after Run returned.
	ErrClosed = errors.New("ztick: loop closed")
)

// DefaultInterval is the tick interval used when LoopSpec.Interval is not set (60 ticks per second).
const DefaultInterval = time.Second / 60

// Loop drives a task.Executor at a fixed rate from a single goroutine.
//
// The executor is not safe for concurrent use; once Run is called, every other goroutine must go
// through Do to touch it.
type Loop struct {
	// Executor is the executor driven by the loop. Only use it directly before Run, or through Do.
	Executor *task.Executor

	interval time.Duration
	clock    clock.WithTicker
	log      logr.Logger
	hooks    LoopHooks
	signals  SignalSpec

	mu      sync.Mutex
	started bool

	reqs     chan request
	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
}

type request struct {
	fn   func(ex *task.Executor)
	done chan struct{}
}

// NewLoop assembles a Loop. Missing fields get defaults (see LoopSpec).
//
// Assembly errors are fail-fast and will panic.
func NewLoop(spec LoopSpec) *Loop {
	c := spec.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	log := spec.Logger
	if log.GetSink() == nil {
		log = safego.DefaultLogger()
	}
	ex := spec.Executor
	if ex == nil {
		ex = task.NewExecutor(
			task.WithExecutorClock(c),
			task.WithExecutorLogger(log),
		)
	}
	if spec.Interval < 0 {
		panic(fmt.Sprintf("ztick: loop interval=%s is invalid (must be >= 0)", spec.Interval))
	}
	return &Loop{
		Executor: ex,
		interval: resolveDuration(spec.Interval, DefaultInterval),
		clock:    c,
		log:      log.WithName("loop"),
		hooks:    spec.Hooks,
		signals:  spec.Signals,
		reqs:     make(chan request),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Run ticks the executor (Executor.Tick) every interval until ctx is done, Stop is called or one of
// the configured OS signals arrives. It then removes every task (Executor.Clear) and runs the
// OnShutdown hooks.
//
// Run blocks. It returns ctx.Err() when ctx ended the loop and nil on Stop or a signal, joined
// with any hook errors. It is NOT idempotent: a second call returns ErrAlreadyStarted.
func (l *Loop) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()
	defer close(l.doneCh)

	sigCh, stopSignals := l.runSignalWatcher()
	defer stopSignals()

	for i, h := range l.hooks.OnStart {
		if h == nil {
			continue
		}
		if err := safeCallHook(ctx, h); err != nil {
			err = fmt.Errorf("ztick: OnStart[%d]: %w", i, err)
			return errors.Join(err, l.shutdown())
		}
	}

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.V(1).Info("loop started", "interval", l.interval.String())

	var primary error
loop:
	for {
		select {
		case <-ctx.Done():
			primary = ctx.Err()
			break loop
		case <-l.stopCh:
			break loop
		case sig := <-sigCh:
			l.log.Info("signal received, stopping loop", "signal", sig.String())
			break loop
		case r := <-l.reqs:
			l.serve(r)
		case <-ticker.C():
			delta := l.Executor.Tick()
			if l.hooks.OnTick != nil {
				safego.Run(func() { l.hooks.OnTick(delta) },
					safego.WithName("loop"),
					safego.WithTag("hook", "OnTick"),
					safego.WithLogger(l.log),
				)
			}
		}
	}

	return errors.Join(primary, l.shutdown())
}

func (l *Loop) serve(r request) {
	defer close(r.done)
	safego.Run(func() { r.fn(l.Executor) },
		safego.WithName("loop"),
		safego.WithTag("call", "Do"),
		safego.WithLogger(l.log),
	)
}

func (l *Loop) shutdown() error {
	n := l.Executor.Size()
	l.Executor.Clear()

	var errs []error
	for i, h := range l.hooks.OnShutdown {
		if h == nil {
			continue
		}
		if err := safeCallHook(context.Background(), h); err != nil {
			errs = append(errs, fmt.Errorf("ztick: OnShutdown[%d]: %w", i, err))
		}
	}
	l.log.V(1).Info("loop stopped", "cleared", n)
	return errors.Join(errs...)
}

// Do runs fn on the loop goroutine, between two ticks, and waits for it to return. It is the way
// to add or remove tasks while the loop runs.
//
// Do returns ErrNotRunning before Run, ErrClosed once Run returned (fn is not called in both cases)
// and ctx.Err() if ctx ends before the loop picked fn up. A panic in fn is recovered and logged.
//
// Do must not be called from a task or a hook: the loop goroutine would wait on itself.
func (l *Loop) Do(ctx context.Context, fn func(ex *task.Executor)) error {
	if fn == nil {
		panic("ztick: Do called with nil func")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return ErrNotRunning
	}

	r := request{fn: fn, done: make(chan struct{})}
	select {
	case l.reqs <- r:
	case <-l.doneCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-r.done
	return nil
}

// Stop asks Run to return. It is idempotent and does not wait; use the Run return for that.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.doneCh }

func (l *Loop) runSignalWatcher() (<-chan os.Signal, func()) {
	// No signals requested.
	if l.signals.Disable {
		return nil, func() {}
	}
	sigs := l.signals.Signals
	if len(sigs) == 0 {
		sigs = defaultSignals()
	}
	if len(sigs) == 0 {
		return nil, func() {}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	stop := func() {
		signal.Stop(ch)
	}
	return ch, stop
}

// --- spec types ---

// LoopSpec configures NewLoop.
type LoopSpec struct {
	// Executor is the executor to drive. nil means a new executor sharing Clock and Logger.
	Executor *task.Executor

	// Interval is the tick interval. 0 means DefaultInterval.
	Interval time.Duration

	// Clock provides the ticker (and, for a default Executor, the self-timing clock).
	// nil means the real clock.
	Clock clock.WithTicker

	// Logger receives loop diagnostics and panics recovered from Do. Zero value means slog's
	// default handler.
	Logger logr.Logger

	// Signals controls whether Run listens for OS signals and stops.
	//
	// If Disable is false and Signals is nil/empty, ztick uses a small default set:
	//   - Unix: SIGINT + SIGTERM
	//   - Non-Unix: os.Interrupt
	Signals SignalSpec

	// Hooks allow users to integrate their resources into the loop lifecycle.
	Hooks LoopHooks
}

// SignalSpec selects the OS signals that stop Run.
type SignalSpec struct {
	// Disable disables signal handling in Run().
	Disable bool

	// Signals declares which signals Run() listens to. nil/empty means using defaults
	// (see LoopSpec.Signals).
	Signals []os.Signal
}

// LoopHooks are user callbacks around the loop lifecycle.
type LoopHooks struct {
	// OnStart runs on the loop goroutine before the first tick.
	// Hooks are executed sequentially. Any error fails Run (OnShutdown still runs).
	OnStart []func(context.Context) error

	// OnTick is called after every tick with the delta handed to the tasks.
	// It runs on the loop goroutine and must be fast. A panic is recovered and logged.
	OnTick func(delta float64)

	// OnShutdown runs after the executor was cleared.
	// Hooks are executed sequentially; errors are aggregated.
	OnShutdown []func(context.Context) error
}

// --- helpers ---

func resolveDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func safeCallHook(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}
