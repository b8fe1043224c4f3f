package task

import "fmt"

// Completion decides when a Job is finished based on how many times its work has run.
//
// It is consulted at construction/Reset (runs == 0) and after every tick whose before-process
// hook and work succeeded. A Job can also be finished by its Gate or by calling Job.Finish.
type Completion interface {
	Done(runs int) bool
}

// Limit finishes a job once its work has run n times. Limit(0) is finished before the first
// tick. n < 0 panics (configuration error).
func Limit(n int) Completion {
	if n < 0 {
		panic(fmt.Sprintf("task: Limit(%d) is invalid (must be >= 0)", n))
	}
	return limit(n)
}

type limit int

func (l limit) Done(runs int) bool { return runs >= int(l) }

// Unlimited never finishes a job on its own; the gate or an explicit Job.Finish must do it.
func Unlimited() Completion { return unlimited{} }

type unlimited struct{}

func (unlimited) Done(int) bool { return false }
