// Package task provides cooperative, single-goroutine tick tasks and the Executor that drives
// them.
//
// # Design highlights
//
//   - Executor: holds tasks, advances each unfinished one once per Execute, removes finished ones
//     and adds their successors.
//   - Job: the built-in Task, composed of a Timer (how time is measured), a Gate (whether the work
//     runs this tick) and a Completion (when it is finished).
//   - Sequence: runs member tasks one after another, optionally repeating the whole list.
//   - Failure containment: a Job never lets an error or panic reach the Executor; it is stored,
//     logged (logr) and handed to the OnError hook.
//
// # Lifecycle
//
// The application owns the tick loop (or uses ztick.Loop):
//
//	ex := task.NewExecutor()
//	ex.Add(task.After(2*time.Second, spawnWave, task.WithName("wave-1")))
//	ex.Add(task.Repeat(500*time.Millisecond, blink, task.WithName("blink")))
//
//	for range frames {
//		ex.Tick() // or ex.Execute(delta)
//	}
//
// Execute takes the delta in seconds from the caller. Tick measures it itself: the time since the
// previous call ended plus the duration of the previous call.
//
// # Presets
//
//	Once      work runs on the first tick, then the job is finished
//	Until     work runs every tick until Job.Finish
//	Times(n)  work runs every tick, finished after n runs
//	Every     timed; work runs every tick with the timer's delta
//	After(d)  timed; work runs once when elapsed time reaches d
//	For(d)    timed; work runs every tick while elapsed time is below d
//	Repeat(p) timed; work runs every p, after an optional WithDelay
//
// New with WithGate/WithCompletion builds any other combination.
//
// # Timing disciplines
//
// By default elapsed time is the sum of caller deltas (AccumulatedTimer), so a job pauses with the
// loop and is deterministic under test. WithClock/WithRealClock switch to SampledTimer, which
// reads a monotonic clock and ignores caller deltas (except on the very first tick).
//
// # Chaining
//
// A finished task's successor (WithNext / SetNext) is added to the executor during the same
// Execute call but first advanced on the next one, so the executor size stays the same across
// the hand-off.
//
// # Observability
//
// Executor.Snapshot returns name, run count, elapsed time and last failure per task:
//
//	snap := ex.Snapshot()
//	if st, ok := snap.Get("blink"); ok {
//		_ = st.Runs
//		_ = st.LastError
//	}
//
// # Names
//
// Job names are optional. A name is normalized by strings.TrimSpace and validated against
// [A-Za-z0-9._-]. Unlike executor membership, names are not required to be unique; Lookup returns
// the first match.
package task
