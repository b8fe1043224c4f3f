// Package ztick drives cooperative tick tasks at a fixed rate.
//
// The scheduling core lives in subpackages; this package only adds a Loop that owns the goroutine
// an executor runs on:
//   - rt/task: Task, Job (Once/Until/Times/Every/After/For/Repeat), Sequence and Executor.
//   - rt/safego: panic containment with go-errors stacks and logr reporting.
//
// You can use rt/task on its own from an existing frame loop by calling Executor.Execute(delta) or
// Executor.Tick() once per frame. Loop is for programs that do not have a frame loop yet.
//
// # Quick start
//
//	l := ztick.NewLoop(ztick.LoopSpec{
//		Interval: time.Second / 30,
//	})
//	l.Executor.Add(task.Repeat(time.Second, func(float64) error {
//		return autosave()
//	}, task.WithName("autosave")))
//
//	go func() {
//		// Any other goroutine goes through Do.
//		_ = l.Do(ctx, func(ex *task.Executor) {
//			ex.Add(task.After(3*time.Second, spawnBoss))
//		})
//	}()
//
//	if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
//		log.Fatal(err)
//	}
//
// # Lifecycle
//
// Run is not idempotent: calling it more than once returns ErrAlreadyStarted.
//
// Run returns when ctx is done, Stop is called, or (unless LoopSpec.Signals.Disable) SIGINT/SIGTERM
// arrives. On the way out it clears the executor, so every remaining task sees Removed, then runs
// the OnShutdown hooks.
//
// Do before Run returns ErrNotRunning; after Run returns, ErrClosed.
package ztick
