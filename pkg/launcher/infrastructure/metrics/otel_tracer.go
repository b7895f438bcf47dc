package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// OpenTelemetryTracer is an implementation of metrics.Tracer using OpenTelemetry.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a tracer from provider.
func NewOpenTelemetryTracer(provider trace.TracerProvider) *OpenTelemetryTracer {
	return &OpenTelemetryTracer{tracer: provider.Tracer(instrumentationName)}
}

// StartLaunchSpan starts the root span for a launch.
func (t *OpenTelemetryTracer) StartLaunchSpan(ctx context.Context, execution *model.LaunchExecution) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, metrics.SpanLaunch, trace.WithAttributes(
		attribute.String("launch.id", execution.ID),
		attribute.String("launch.entrypoint", execution.EntryPoint),
		attribute.String("launch.mode", execution.Mode),
	))
	logger.Debugf("Tracer: OTel launch span started for %s", execution.ID)
	return ctx, func() {
		span.SetAttributes(
			attribute.String("launch.status", execution.Status.String()),
			attribute.Int("launch.exit_code", execution.ExitCode),
			attribute.Int("launch.pid", execution.PID),
		)
		if execution.Status == model.LaunchStatusFailed {
			span.SetStatus(codes.Error, execution.ErrorMessage)
		}
		span.End()
	}
}

// StartPhaseSpan starts a child span of the span in ctx.
func (t *OpenTelemetryTracer) StartPhaseSpan(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}

// RecordError records err on the current span and marks it failed.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("module", module)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent adds an event to the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprint(val)))
		}
	}
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
