package task

import "time"

// Task is a unit of per-tick work driven by an Executor.
//
// Implementations are not required to be safe for concurrent use: an Executor advances its tasks
// from a single goroutine. Tasks are tracked by identity, so implementations must be comparable
// (in practice, pointer types).
type Task interface {
	// Execute advances the task by one tick. delta is the elapsed time in seconds.
	//
	// Execute must not panic or report failures to the caller; failures are contained in the task.
	Execute(delta float64)

	// Added is called once when the task is inserted into an Executor.
	Added()

	// Removed is called once when the task is taken out of an Executor, whether it finished or
	// was removed explicitly.
	Removed()

	// Finished reports whether the task is done. It must not have side effects.
	Finished() bool

	// Reset restores the task to its pre-execution state without altering its configuration.
	Reset()

	// Next returns the task to add to the executor once this one finishes, or nil.
	Next() Task
}

// Func is the user-provided work executed by a Job.
//
// delta is in seconds; its meaning depends on the job's timer and gate (see Timer and Gate).
// A non-nil error is captured by the job (see Job.Err); it never reaches the Executor.
type Func func(delta float64) error

// Status is a point-in-time view of a task held by an Executor.
//
// Fields other than Finished are only populated for tasks exposing them (Job does).
type Status struct {
	Name     string
	Finished bool

	Runs    int
	Elapsed time.Duration

	// LastError is the message of the most recent captured failure; empty if none
	// (or cleared by Reset).
	LastError string
}

// Snapshot is a point-in-time view of all tasks in an Executor, in iteration order.
type Snapshot struct {
	Tasks []Status
}

// Get finds a task status by name.
func (s Snapshot) Get(name string) (Status, bool) {
	for _, st := range s.Tasks {
		if st.Name == name {
			return st, true
		}
	}
	return Status{}, false
}

// Optional capabilities read by Executor.Snapshot and Executor.Lookup.
type (
	namedTask   interface{ Name() string }
	erroredTask interface{ Err() error }
	countedTask interface{ Runs() int }
	timedTask   interface{ Elapsed() time.Duration }
)
