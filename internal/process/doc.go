// Package process terminates browser process trees left behind by a launcher.
package process
