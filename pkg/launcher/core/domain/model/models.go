// Package model defines the launcher's domain types.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Assignment is one KEY=VALUE pair parsed from an env file.
type Assignment struct {
	Key   string
	Value string
	// Line is the 1-based line the assignment came from.
	Line int
}

// String renders the assignment in KEY=VALUE form.
func (a Assignment) String() string {
	return a.Key + "=" + a.Value
}

// LaunchStatus is the lifecycle state of a launch execution.
type LaunchStatus string

const (
	LaunchStatusStarting LaunchStatus = "STARTING"
	LaunchStatusRunning  LaunchStatus = "RUNNING"
	LaunchStatusDetached LaunchStatus = "DETACHED"
	LaunchStatusExited   LaunchStatus = "EXITED"
	LaunchStatusFailed   LaunchStatus = "FAILED"
)

// String returns the string representation of the LaunchStatus.
func (s LaunchStatus) String() string {
	return string(s)
}

// IsFinished reports whether the launcher is done with the execution.
// A detached execution is finished from the launcher's point of view.
func (s LaunchStatus) IsFinished() bool {
	switch s {
	case LaunchStatusDetached, LaunchStatusExited, LaunchStatusFailed:
		return true
	default:
		return false
	}
}

// LaunchExecution records one launcher run.
type LaunchExecution struct {
	ID              string
	EntryPoint      string
	WorkDir         string
	Command         []string
	Mode            string
	Status          LaunchStatus
	ExitCode        int
	PID             int
	AssignmentCount int
	SkippedLines    int
	// EnvSnapshot is the applied env file in dotenv form with sensitive values masked.
	EnvSnapshot  string
	ErrorMessage string
	StartTime    time.Time
	EndTime      *time.Time
	CreateTime   time.Time
}

// NewID returns a new random identifier.
func NewID() string {
	return uuid.New().String()
}

// NewLaunchExecution creates an execution in STARTING state.
func NewLaunchExecution(entryPoint, mode string) *LaunchExecution {
	now := time.Now()
	return &LaunchExecution{
		ID:         NewID(),
		EntryPoint: entryPoint,
		Mode:       mode,
		Status:     LaunchStatusStarting,
		ExitCode:   -1,
		StartTime:  now,
		CreateTime: now,
	}
}

// MarkRunning records the child PID.
func (e *LaunchExecution) MarkRunning(pid int) {
	e.PID = pid
	e.Status = LaunchStatusRunning
}

// MarkDetached records a child that was started and released.
func (e *LaunchExecution) MarkDetached(pid int) {
	e.PID = pid
	e.Status = LaunchStatusDetached
	e.finish()
}

// MarkExited records the child's exit code.
func (e *LaunchExecution) MarkExited(code int) {
	e.ExitCode = code
	e.Status = LaunchStatusExited
	e.finish()
}

// MarkFailed records a launcher-side failure.
func (e *LaunchExecution) MarkFailed(err error) {
	e.Status = LaunchStatusFailed
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	e.finish()
}

// Duration is the time between start and end, or zero while unfinished.
func (e *LaunchExecution) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// CommandLine joins the command for display.
func (e *LaunchExecution) CommandLine() string {
	return strings.Join(e.Command, " ")
}

func (e *LaunchExecution) finish() {
	now := time.Now()
	e.EndTime = &now
}
