package task

import "errors"

// ErrInvalidName is the panic value (wrapped) for a job name that does not
// match [A-Za-z0-9._-] after strings.TrimSpace.
var ErrInvalidName = errors.New("task: invalid name")
