//go:build !unix

package ztick

import "os"

// defaultSignals only has os.Interrupt, the one signal guaranteed on every platform.
func defaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
