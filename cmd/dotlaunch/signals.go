package main

import (
	"context"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// signalRelease hands SIGINT and SIGTERM back to their default behaviour once the launch
// is over, so Ctrl+C at the closing "Press Enter" prompt ends the launcher.
type signalRelease struct {
	stop context.CancelFunc
}

func newSignalRelease(stop context.CancelFunc) port.LaunchListener {
	return &signalRelease{stop: stop}
}

func (s *signalRelease) BeforeLaunch(ctx context.Context, execution *model.LaunchExecution) {}

func (s *signalRelease) AfterLaunch(ctx context.Context, execution *model.LaunchExecution) {
	logger.Debugf("Launch %s is over; restoring default signal handling", execution.ID)
	s.stop()
}

var _ port.LaunchListener = (*signalRelease)(nil)
