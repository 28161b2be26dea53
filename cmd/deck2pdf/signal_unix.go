//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals end a batch early; the document in flight is abandoned.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
