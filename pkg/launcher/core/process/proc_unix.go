//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// prepareCommandGroup moves a detached child into its own process group so that it
// outlives the terminal session. A waited-on child stays in the launcher's foreground
// group: it can read the terminal and receives Ctrl+C from it directly.
func prepareCommandGroup(cmd *exec.Cmd, detach bool) {
	if detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
}

func interruptCommandTree(cmd *exec.Cmd) error {
	if commandPID(cmd) <= 0 {
		return nil
	}
	return cmd.Process.Signal(syscall.SIGINT)
}

func killCommandTree(cmd *exec.Cmd) error {
	if commandPID(cmd) <= 0 {
		return nil
	}
	return cmd.Process.Kill()
}

func signalExitCode(exitErr *exec.ExitError) (int, bool) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return 128 + int(status.Signal()), true
}
