//go:build unix

package ztick

import (
	"os"
	"syscall"
)

// defaultSignals stops a Loop on Ctrl-C and on the usual supervisor termination request.
func defaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
