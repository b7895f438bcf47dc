//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// prepareCommandGroup gives a detached child its own process group. A waited-on child
// shares the launcher's console group so Ctrl+C reaches it as a KeyboardInterrupt.
func prepareCommandGroup(cmd *exec.Cmd, detach bool) {
	if detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
		}
	}
}

// interruptCommandTree does nothing: the console already delivered Ctrl+C to the child,
// and a console process cannot be closed politely from outside. killCommandTree follows
// after the grace period.
func interruptCommandTree(cmd *exec.Cmd) error {
	return nil
}

func killCommandTree(cmd *exec.Cmd) error {
	pid := commandPID(cmd)
	if pid <= 0 {
		return nil
	}
	out, err := exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/T", "/F").CombinedOutput()
	if err != nil {
		if text := strings.TrimSpace(string(out)); text != "" {
			return fmt.Errorf("taskkill /PID %d /T /F: %w (%s)", pid, err, text)
		}
		return err
	}
	return nil
}

func signalExitCode(*exec.ExitError) (int, bool) {
	return 0, false
}
