package safego

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// ErrPanicked matches (via errors.Is) every error produced from a recovered panic.
var ErrPanicked = errors.New("safego: panicked")

// Tag is a lightweight key/value pair carried by panic reports.
// Tags are kept as a slice to preserve insertion order for stable output.
type Tag struct {
	Key   string
	Value string
}

// PanicHandler is called when a function run by Run panics.
type PanicHandler func(info PanicInfo)

// PanicInfo describes a recovered panic.
type PanicInfo struct {
	Name string
	Tags []Tag
	Err  *PanicError
}

// PanicError is the error form of a recovered panic.
//
// It matches ErrPanicked with errors.Is. If the panic value is itself an error, Unwrap returns it,
// so errors.Is/As also see through to the original value.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	wrapped *goerrors.Error
}

func newPanicError(v any, skip int) *PanicError {
	return &PanicError{
		Value:   v,
		wrapped: goerrors.Wrap(v, skip+1),
	}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("safego: panic: %v", e.Value)
}

// Is reports whether target is ErrPanicked.
func (e *PanicError) Is(target error) bool { return target == ErrPanicked }

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Stack returns the goroutine stack captured when the panic was recovered.
func (e *PanicError) Stack() []byte { return e.wrapped.Stack() }

// ErrorStack returns the error message followed by the captured stack.
func (e *PanicError) ErrorStack() string { return e.wrapped.ErrorStack() }
