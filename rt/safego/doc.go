// Package safego contains panics raised by synchronous callbacks.
//
// Tick-driven code calls user functions many times per second from a single goroutine. A panic
// in one of them must not unwind the loop, and it must still be observable. safego offers two
// shapes for that:
//
//   - Call runs a func() error and folds a recovered panic into the returned error. The error is a
//     *PanicError: it matches ErrPanicked with errors.Is, unwraps to the panic value when that
//     value is an error, and carries the stack captured at recovery (ErrorStack/Stack).
//   - Run runs a func() and reports a recovered panic to a PanicHandler, or logs it through a
//     logr.Logger when no handler is configured.
//
//	err := safego.Call(func() error { return step(delta) })
//	if errors.Is(err, safego.ErrPanicked) {
//		// ...
//	}
//
//	safego.Run(func() { t.Execute(delta) },
//		safego.WithName("spawner"),
//		safego.WithLogger(log),
//	)
//
// Neither function starts a goroutine.
package safego
