//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// TerminateTree force-kills pid and its children with taskkill.
func TerminateTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
