package metrics

import (
	"context"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// MetricRecorder is an abstract interface for recording launch metrics.
//
// Implementations exist for Prometheus and OpenTelemetry; NoOpMetricRecorder is the fallback.
type MetricRecorder interface {
	// RecordLaunchStart records that a launch has begun.
	//
	// ctx: The context for the operation.
	// execution: The execution in STARTING state.
	RecordLaunchStart(ctx context.Context, execution *model.LaunchExecution)

	// RecordLaunchEnd records the outcome of a launch: its status, duration and,
	// for an exited child, its exit code.
	//
	// ctx: The context for the operation.
	// execution: The finished execution.
	RecordLaunchEnd(ctx context.Context, execution *model.LaunchExecution)

	// RecordEnvLoaded records how many env file lines were applied and how many were skipped.
	RecordEnvLoaded(ctx context.Context, applied, skipped int)
}
