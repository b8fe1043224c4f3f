package safego

import (
	"fmt"
	"log/slog"

	"github.com/go-logr/logr"
)

// Call executes fn synchronously and returns its error.
//
// A panic raised by fn is recovered and returned as a *PanicError (which matches ErrPanicked),
// so callers only ever deal with a single failure path.
func Call(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p, 2)
		}
	}()
	return fn()
}

// Run executes fn synchronously, recovering any panic and reporting it.
//
// The panic is reported via WithPanicHandler if provided, otherwise logged at error level to
// the logger configured with WithLogger (slog's default handler when unset). Run never panics.
func Run(fn func(), opts ...Option) {
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	err := Call(func() error {
		fn()
		return nil
	})
	if err == nil {
		return
	}
	pe, ok := err.(*PanicError)
	if !ok {
		return
	}

	info := PanicInfo{
		Name: c.name,
		Tags: cloneTags(c.tags),
		Err:  pe,
	}
	if c.onPanic != nil {
		callPanicHandlerNoPanic(c, info)
		return
	}
	reportPanic(c.logger, info)
}

func reportPanic(log logr.Logger, info PanicInfo) {
	kv := make([]any, 0, 2+2*len(info.Tags))
	if info.Name != "" {
		kv = append(kv, "name", info.Name)
	}
	for _, t := range info.Tags {
		kv = append(kv, t.Key, t.Value)
	}
	kv = append(kv, "stack", string(info.Err.Stack()))
	log.Error(info.Err, "recovered panic", kv...)
}

func callPanicHandlerNoPanic(c config, info PanicInfo) {
	defer func() {
		if p := recover(); p != nil {
			// A panicking handler must not take down the caller; fall back to the logger.
			reportPanic(c.logger, PanicInfo{
				Name: info.Name,
				Tags: info.Tags,
				Err:  newPanicError(fmt.Sprintf("safego: panic handler panicked: %v", p), 2),
			})
		}
	}()
	c.onPanic(info)
}

func cloneTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

// DefaultLogger returns a logr.Logger backed by slog's default handler.
func DefaultLogger() logr.Logger {
	return logr.FromSlogHandler(slog.Default().Handler())
}
