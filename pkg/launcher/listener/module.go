// Package listener registers the built-in LaunchListeners.
package listener

import (
	"go.uber.org/fx"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	"github.com/tigerroll/dotlaunch/pkg/launcher/listener/logging"
	"github.com/tigerroll/dotlaunch/pkg/launcher/listener/metrics"
)

// GroupTag is the value group the launcher collects its listeners from.
const GroupTag = `group:"launchListeners"`

// Module adds the logging and metrics listeners to the launchListeners group.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		logging.NewLoggingLaunchListener,
		fx.As(new(port.LaunchListener)),
		fx.ResultTags(GroupTag),
	)),
	fx.Provide(fx.Annotate(
		metrics.NewMetricsLaunchListener,
		fx.As(new(port.LaunchListener)),
		fx.ResultTags(GroupTag),
	)),
)
