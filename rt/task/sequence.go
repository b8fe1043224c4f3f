package task

import "fmt"

// Sequence runs an ordered list of tasks one at a time, optionally repeating the whole list.
//
// Each tick only the current member is executed. When it reports finished it is Reset and the
// next member becomes current; after the last member the repeat counter grows and the first
// member is current again. The sequence is finished once the list ran the configured number
// of times.
//
// Members are owned by the sequence: it never calls Added/Removed on them. A member that is
// also registered in an executor on its own is the application's responsibility.
type Sequence struct {
	tasks []Task
	times int
	next  Task

	current int
	ran     int
}

// NewSequence creates a sequence that runs tasks once.
func NewSequence(tasks ...Task) *Sequence {
	return NewRepeatedSequence(1, tasks...)
}

// NewRepeatedSequence creates a sequence that runs tasks times times.
//
// times == 0 or an empty list yields a sequence finished before its first tick; times < 0 and
// nil members panic (configuration error).
func NewRepeatedSequence(times int, tasks ...Task) *Sequence {
	if times < 0 {
		panic(fmt.Sprintf("task: sequence times=%d is invalid (must be >= 0)", times))
	}
	for i, t := range tasks {
		if t == nil {
			panic(fmt.Sprintf("task: sequence member #%d is nil", i))
		}
	}
	return &Sequence{
		tasks: append([]Task(nil), tasks...),
		times: times,
	}
}

// Execute advances the current member. A member that is already finished (e.g. Times(0)) is not
// executed; it is reset and the tick moves on to the next member.
func (s *Sequence) Execute(delta float64) {
	if s.Finished() {
		return
	}
	t := s.tasks[s.current]
	if !t.Finished() {
		t.Execute(delta)
		if !t.Finished() {
			return
		}
	}
	t.Reset()
	s.current++
	if s.current >= len(s.tasks) {
		s.ran++
		s.current = 0
	}
}

// Added is a no-op.
func (s *Sequence) Added() {}

// Removed is a no-op.
func (s *Sequence) Removed() {}

// Finished reports whether the list ran the configured number of times.
func (s *Sequence) Finished() bool {
	return len(s.tasks) == 0 || s.ran >= s.times
}

// Reset rewinds the sequence to its first member and resets every member.
func (s *Sequence) Reset() {
	s.current = 0
	s.ran = 0
	for _, t := range s.tasks {
		t.Reset()
	}
}

// Next returns the successor, or nil.
func (s *Sequence) Next() Task { return s.next }

// SetNext sets the successor added once the sequence finishes.
func (s *Sequence) SetNext(next Task) { s.next = next }

// Current returns the index of the member advanced on the next tick.
func (s *Sequence) Current() int { return s.current }

// Ran returns how many times the whole list has completed.
func (s *Sequence) Ran() int { return s.ran }
