// Package port defines the interfaces the launcher use case depends on.
package port

import (
	"context"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// LaunchListener is notified around a launch.
type LaunchListener interface {
	// BeforeLaunch is called once the execution exists, before the working directory is entered.
	BeforeLaunch(ctx context.Context, execution *model.LaunchExecution)
	// AfterLaunch is called with the finished execution, whatever the outcome.
	AfterLaunch(ctx context.Context, execution *model.LaunchExecution)
}

// Console is the human-facing status output of the launcher.
type Console interface {
	Starting(entryPoint, dir string)
	EnvLoaded(count int, path string)
	EnvMissing(path string)
	MissingEntryPoint(path string)
	Launching(command string)
	Running(pid int)
	Exited(code int)
	StartFailure(err error)
	Failure(err error)
	Done()
	// Pause waits for acknowledgement when the pause policy asks for it.
	Pause()
}
