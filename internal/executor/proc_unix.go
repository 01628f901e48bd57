//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// detach moves the child into a new process group so a Ctrl+C aimed at the
// assistant does not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
