// Package metrics provides a LaunchListener that forwards launch events to a MetricRecorder.
package metrics

import (
	"context"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
)

// MetricsLaunchListener records launch start and end.
type MetricsLaunchListener struct {
	recorder metrics.MetricRecorder
}

// NewMetricsLaunchListener creates a listener that reports to recorder.
func NewMetricsLaunchListener(recorder metrics.MetricRecorder) port.LaunchListener {
	return &MetricsLaunchListener{recorder: recorder}
}

func (l *MetricsLaunchListener) BeforeLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.recorder.RecordLaunchStart(ctx, execution)
}

func (l *MetricsLaunchListener) AfterLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.recorder.RecordLaunchEnd(ctx, execution)
}

var _ port.LaunchListener = (*MetricsLaunchListener)(nil)
