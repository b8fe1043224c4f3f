package task

import (
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/evan-idocoding/ztick/rt/safego"
)

// Executor owns a collection of tasks and advances every unfinished one once per Execute call.
//
// Finished tasks are removed in the same pass, and their successor (Task.Next) is added so that it
// is first advanced on the following call.
//
// Executor is not safe for concurrent use: exactly one goroutine drives it (see ztick.Loop for a
// driver that marshals calls from other goroutines).
type Executor struct {
	cfg executorConfig
	log logr.Logger

	tasks   []Task
	members map[Task]struct{}

	// self-timing for Tick
	lastUpdate time.Time
	lastCost   time.Duration
}

// NewExecutor creates an empty Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.clock == nil {
		panic("task: WithExecutorClock called with nil clock")
	}
	return &Executor{
		cfg:     cfg,
		log:     cfg.logger.WithName("executor"),
		members: make(map[Task]struct{}),
	}
}

// Add runs the executor's OnAdd hook, calls t.Added and inserts t. Panics in either are
// recovered and logged; t is inserted regardless.
//
// Adding a task that is already present is a no-op. t must not be nil.
func (e *Executor) Add(t Task) {
	if t == nil {
		panic("task: Add called with nil Task")
	}
	if _, ok := e.members[t]; ok {
		e.log.V(1).Info("task already added", "task", nameOf(t))
		return
	}
	if e.cfg.onAdd != nil {
		e.contain(t, "OnAdd", func() { e.cfg.onAdd(t) })
	}
	e.lifecycle(t, "Added", t.Added)
	e.tasks = append(e.tasks, t)
	e.members[t] = struct{}{}
}

// Remove runs the executor's OnRemove hook, detaches t and calls t.Removed.
//
// Removing a task that is not present is a no-op. Removal does not require the task to be
// finished.
func (e *Executor) Remove(t Task) {
	if _, ok := e.members[t]; !ok {
		return
	}
	e.detach(t)
}

func (e *Executor) detach(t Task) {
	if e.cfg.onRemove != nil {
		e.contain(t, "OnRemove", func() { e.cfg.onRemove(t) })
	}
	delete(e.members, t)
	if i := slices.Index(e.tasks, t); i >= 0 {
		e.tasks = slices.Delete(e.tasks, i, i+1)
	}
	e.lifecycle(t, "Removed", t.Removed)
}

// Execute advances every unfinished task once with delta (seconds).
//
// The pass iterates over a copy of the collection taken at the start of the call: tasks removed
// during the pass (by a hook or by another task) are skipped, and tasks added during the pass,
// including successors, are first advanced on the next call. After advancing (or if it already
// was), a finished task is removed and its successor, if any, is added.
//
// A panic escaping a task's Execute, Added or Removed, or one of the executor's hooks, is recovered
// and logged so the pass continues.
func (e *Executor) Execute(delta float64) {
	start := e.cfg.clock.Now()

	pass := append([]Task(nil), e.tasks...)
	for _, t := range pass {
		if _, ok := e.members[t]; !ok {
			continue
		}
		if !t.Finished() {
			e.advance(t, delta)
		}
		if !t.Finished() {
			continue
		}
		if _, ok := e.members[t]; !ok {
			// removed itself while advancing
			continue
		}
		e.detach(t)
		if next := t.Next(); next != nil {
			e.Add(next)
		}
	}

	end := e.cfg.clock.Now()
	e.lastCost = end.Sub(start)
	e.lastUpdate = end
}

func (e *Executor) advance(t Task, delta float64) {
	e.lifecycle(t, "Execute", func() { t.Execute(delta) })
}

// lifecycle calls a Task method. Job contains its own panics; other implementations are
// wrapped so a panic cannot abort the pass.
func (e *Executor) lifecycle(t Task, call string, fn func()) {
	if _, ok := t.(*Job); ok {
		fn()
		return
	}
	e.contain(t, call, fn)
}

func (e *Executor) contain(t Task, call string, fn func()) {
	safego.Run(fn,
		safego.WithName(nameOf(t)),
		safego.WithTag("call", call),
		safego.WithLogger(e.log),
	)
}

// Tick is Execute with a self-measured delta: the time since the previous Execute ended plus the
// duration of that previous Execute. The first call uses 0. It returns the delta used.
//
// The correction for the previous call's own cost assumes task cost is roughly stable from one
// tick to the next; it is not exact.
func (e *Executor) Tick() float64 {
	var since time.Duration
	if !e.lastUpdate.IsZero() {
		since = e.cfg.clock.Since(e.lastUpdate)
	}
	delta := (since + e.lastCost).Seconds()
	e.Execute(delta)
	return delta
}

// Clear removes every task, in iteration order, the same way Remove does.
func (e *Executor) Clear() {
	for _, t := range append([]Task(nil), e.tasks...) {
		if _, ok := e.members[t]; !ok {
			continue
		}
		e.detach(t)
	}
}

// Size returns the number of tasks currently held.
func (e *Executor) Size() int { return len(e.tasks) }

// Snapshot returns a point-in-time view of all tasks, in iteration order.
func (e *Executor) Snapshot() Snapshot {
	out := make([]Status, 0, len(e.tasks))
	for _, t := range e.tasks {
		st := Status{
			Name:     nameOf(t),
			Finished: t.Finished(),
		}
		if c, ok := t.(countedTask); ok {
			st.Runs = c.Runs()
		}
		if tt, ok := t.(timedTask); ok {
			st.Elapsed = tt.Elapsed()
		}
		if et, ok := t.(erroredTask); ok {
			if err := et.Err(); err != nil {
				st.LastError = err.Error()
			}
		}
		out = append(out, st)
	}
	return Snapshot{Tasks: out}
}

// Lookup finds the first held task with the given name (normalized by strings.TrimSpace).
// Empty names never match.
func (e *Executor) Lookup(name string) (Task, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	for _, t := range e.tasks {
		if nameOf(t) == name {
			return t, true
		}
	}
	return nil, false
}

func nameOf(t Task) string {
	if n, ok := t.(namedTask); ok {
		return n.Name()
	}
	return ""
}
