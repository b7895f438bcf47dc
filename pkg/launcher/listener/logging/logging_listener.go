// Package logging provides a LaunchListener that writes launch progress to the diagnostic log.
package logging

import (
	"context"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

type LoggingLaunchListener struct{}

func NewLoggingLaunchListener() port.LaunchListener {
	return &LoggingLaunchListener{}
}

func (l *LoggingLaunchListener) BeforeLaunch(ctx context.Context, execution *model.LaunchExecution) {
	logger.Infof("LaunchListener: BeforeLaunch - EntryPoint: %s, ID: %s, Mode: %s", execution.EntryPoint, execution.ID, execution.Mode)
}

func (l *LoggingLaunchListener) AfterLaunch(ctx context.Context, execution *model.LaunchExecution) {
	switch execution.Status {
	case model.LaunchStatusFailed:
		logger.Warnf("LaunchListener: AfterLaunch - ID: %s, Status: %s, Error: %s", execution.ID, execution.Status, execution.ErrorMessage)
	default:
		logger.Infof("LaunchListener: AfterLaunch - ID: %s, Status: %s, ExitCode: %d, PID: %d, Duration: %s",
			execution.ID, execution.Status, execution.ExitCode, execution.PID, execution.Duration())
	}
}

var _ port.LaunchListener = (*LoggingLaunchListener)(nil)
