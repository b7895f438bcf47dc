package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const instrumentationName = "github.com/tigerroll/dotlaunch"

// OpenTelemetryRecorder is an implementation of metrics.MetricRecorder using OpenTelemetry metrics.
type OpenTelemetryRecorder struct {
	launchTotal     otelmetric.Int64Counter
	launchDuration  otelmetric.Float64Histogram
	childExitCode   otelmetric.Int64Gauge
	envAssignments  otelmetric.Int64Counter
	envSkippedLines otelmetric.Int64Counter
}

// NewOpenTelemetryRecorder creates the instruments on a meter from provider.
func NewOpenTelemetryRecorder(provider otelmetric.MeterProvider) (*OpenTelemetryRecorder, error) {
	meter := provider.Meter(instrumentationName)
	r := &OpenTelemetryRecorder{}
	var err error

	if r.launchTotal, err = meter.Int64Counter("dotlaunch_launch_total",
		otelmetric.WithDescription("Total number of launches by entry point and final status.")); err != nil {
		return nil, err
	}
	if r.launchDuration, err = meter.Float64Histogram("dotlaunch_launch_duration_seconds",
		otelmetric.WithDescription("Duration of launches, from start to child exit or detach."),
		otelmetric.WithUnit("s")); err != nil {
		return nil, err
	}
	if r.childExitCode, err = meter.Int64Gauge("dotlaunch_child_exit_code",
		otelmetric.WithDescription("Exit code of the last child process that ran to completion.")); err != nil {
		return nil, err
	}
	if r.envAssignments, err = meter.Int64Counter("dotlaunch_env_assignments_total",
		otelmetric.WithDescription("Total number of env file assignments applied.")); err != nil {
		return nil, err
	}
	if r.envSkippedLines, err = meter.Int64Counter("dotlaunch_env_skipped_lines_total",
		otelmetric.WithDescription("Total number of env file lines skipped as malformed.")); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *OpenTelemetryRecorder) RecordLaunchStart(ctx context.Context, execution *model.LaunchExecution) {
	logger.Debugf("Metrics: OTel launch %s of '%s' started.", execution.ID, execution.EntryPoint)
}

func (r *OpenTelemetryRecorder) RecordLaunchEnd(ctx context.Context, execution *model.LaunchExecution) {
	attrs := otelmetric.WithAttributes(
		attribute.String("entrypoint", execution.EntryPoint),
		attribute.String("status", execution.Status.String()),
	)
	r.launchTotal.Add(ctx, 1, attrs)
	if execution.EndTime != nil {
		r.launchDuration.Record(ctx, execution.Duration().Seconds(), attrs)
	}
	if execution.Status == model.LaunchStatusExited {
		r.childExitCode.Record(ctx, int64(execution.ExitCode),
			otelmetric.WithAttributes(attribute.String("entrypoint", execution.EntryPoint)))
	}
}

func (r *OpenTelemetryRecorder) RecordEnvLoaded(ctx context.Context, applied, skipped int) {
	r.envAssignments.Add(ctx, int64(applied))
	r.envSkippedLines.Add(ctx, int64(skipped))
}

var _ metrics.MetricRecorder = (*OpenTelemetryRecorder)(nil)
