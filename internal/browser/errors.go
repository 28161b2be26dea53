package browser

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnknownEngine = errors.New("unknown browser engine")
	ErrLaunch        = errors.New("browser launch failed")
	ErrClosed        = errors.New("surface closed")
)

// sessionLostMarkers are fragments of CDP transport errors seen when the
// browser process or its target goes away mid-command.
var sessionLostMarkers = []string{
	"target closed",
	"session closed",
	"websocket: close",
	"use of closed network connection",
	"inspected target navigated or closed",
	"no target with given id",
	"connection reset by peer",
	"broken pipe",
}

// IsSessionInterrupted reports whether err means the browser connection was
// lost, as opposed to a page-level failure. Such errors leave the Browser
// unusable until it is closed and relaunched.
func IsSessionInterrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range sessionLostMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
