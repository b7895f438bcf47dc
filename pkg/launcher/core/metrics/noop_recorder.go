package metrics

import (
	"context"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// NoOpMetricRecorder is an implementation of MetricRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

func (r *NoOpMetricRecorder) RecordLaunchStart(ctx context.Context, execution *model.LaunchExecution) {}
func (r *NoOpMetricRecorder) RecordLaunchEnd(ctx context.Context, execution *model.LaunchExecution) {}
func (r *NoOpMetricRecorder) RecordEnvLoaded(ctx context.Context, applied, skipped int) {}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new instance of NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

func (t *NoOpTracer) StartLaunchSpan(ctx context.Context, execution *model.LaunchExecution) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) StartPhaseSpan(ctx context.Context, name string) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) RecordError(ctx context.Context, module string, err error) {}

func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
