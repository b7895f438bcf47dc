// Package process starts the entry-point program as a child process.
package process

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const (
	moduleName = "process"
	// DefaultStopGrace is used when Spec.StopGrace is zero.
	DefaultStopGrace = 10 * time.Second
)

// Spec describes the child process.
type Spec struct {
	Argv []string
	Dir  string
	// Env is the complete child environment in KEY=VALUE form.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// StopGrace is how long the child has to exit after an interrupt before it is killed.
	StopGrace time.Duration
}

// Runner runs child processes.
type Runner interface {
	// Run starts the child in the launcher's own process group, so it shares the terminal,
	// calls started with its PID and blocks until it exits.
	// Cancelling ctx interrupts the child and kills it after StopGrace.
	// The returned code is the child's exit status; err is set only when the child
	// could not be started or waited on.
	Run(ctx context.Context, spec Spec, started func(pid int)) (int, error)
	// Detach starts the child in its own process group, releases it and returns its PID.
	Detach(spec Spec) (int, error)
}

// ExecRunner is the os/exec implementation of Runner.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() Runner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, spec Spec, started func(pid int)) (int, error) {
	cmd, err := r.start(spec, false)
	if err != nil {
		return -1, err
	}
	pid := commandPID(cmd)
	if started != nil {
		started(pid)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return exitStatus(err)
	case <-ctx.Done():
	}

	grace := spec.StopGrace
	if grace <= 0 {
		grace = DefaultStopGrace
	}
	logger.Infof("process: interrupting pid %d (grace %s)", pid, grace)
	if err := interruptCommandTree(cmd); err != nil {
		logger.Warnf("process: interrupt pid %d: %v", pid, err)
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case err := <-done:
		return exitStatus(err)
	case <-timer.C:
	}

	logger.Warnf("process: pid %d still running after %s, killing", pid, grace)
	if err := killCommandTree(cmd); err != nil {
		logger.Warnf("process: kill pid %d: %v", pid, err)
	}
	return exitStatus(<-done)
}

func (r *ExecRunner) Detach(spec Spec) (int, error) {
	cmd, err := r.start(spec, true)
	if err != nil {
		return -1, err
	}
	pid := commandPID(cmd)
	if err := cmd.Process.Release(); err != nil {
		return pid, exception.NewLaunchErrorf(moduleName, exception.KindInternal, "failed to release pid %d", pid, err)
	}
	return pid, nil
}

func (r *ExecRunner) start(spec Spec, detach bool) (*exec.Cmd, error) {
	cmd, err := command(spec, detach)
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, exception.NewLaunchErrorf(moduleName, exception.KindStartFailure, "failed to start %s", spec.Argv[0], err)
	}
	logger.Debugf("process: started pid %d: %v", commandPID(cmd), spec.Argv)
	return cmd, nil
}

// command builds the exec.Cmd for spec. Only a detached child leaves the launcher's process group.
func command(spec Spec, detach bool) (*exec.Cmd, error) {
	if len(spec.Argv) == 0 || spec.Argv[0] == "" {
		return nil, exception.NewLaunchError(moduleName, exception.KindStartFailure, "empty command", nil)
	}

	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	prepareCommandGroup(cmd, detach)
	return cmd, nil
}

// exitStatus converts the result of cmd.Wait into an exit code.
// A child terminated by a signal reports 128+signal where the platform exposes it.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code, ok := signalExitCode(exitErr); ok {
			return code, nil
		}
		return exitErr.ExitCode(), nil
	}
	return -1, exception.NewLaunchError(moduleName, exception.KindInternal, "failed to wait for child", err)
}

func commandPID(cmd *exec.Cmd) int {
	if cmd == nil || cmd.Process == nil {
		return 0
	}
	return cmd.Process.Pid
}
