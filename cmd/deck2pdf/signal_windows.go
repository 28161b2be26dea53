//go:build windows

package main

import "os"

// Windows delivers no SIGTERM to console programs.
var stopSignals = []os.Signal{os.Interrupt}
