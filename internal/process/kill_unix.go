//go:build !windows

package process

import "syscall"

// TerminateTree sends SIGKILL to the process group led by pid, which takes
// the browser's renderer and GPU helpers down with it.
func TerminateTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
