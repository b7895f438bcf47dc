package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const moduleName = "metrics"

// MetricRecorderParams defines the dependencies for NewMetricRecorder.
type MetricRecorderParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Metrics   *config.MetricsConfig
	Tracing   *config.TracingConfig
}

// NewMetricRecorder selects the recorder for metrics.exporter and registers its flush on shutdown.
func NewMetricRecorder(p MetricRecorderParams) (metrics.MetricRecorder, error) {
	switch p.Metrics.Exporter {
	case "prometheus":
		recorder := NewPrometheusRecorder()
		path := p.Metrics.Textfile
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := recorder.WriteTextfile(path); err != nil {
					logger.Warnf("Metrics: failed to write %s: %v", path, err)
					return nil
				}
				logger.Debugf("Metrics: wrote %s", path)
				return nil
			},
		})
		return recorder, nil

	case "otlp":
		exporter, err := newMetricExporter(context.Background(), p.Metrics)
		if err != nil {
			return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "failed to create OTLP metric exporter", err)
		}
		provider := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
			sdkmetric.WithResource(newResource(p.Tracing.ServiceName)),
		)
		otel.SetMeterProvider(provider)
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := provider.Shutdown(ctx); err != nil {
					logger.Warnf("Metrics: OTLP shutdown: %v", err)
				}
				return nil
			},
		})
		return NewOpenTelemetryRecorder(provider)

	default:
		return metrics.NewNoOpMetricRecorder(), nil
	}
}

// NewTracer selects the tracer for tracing.exporter and registers its flush on shutdown.
func NewTracer(lc fx.Lifecycle, cfg *config.TracingConfig) (metrics.Tracer, error) {
	if cfg.Exporter != "otlp" {
		return metrics.NewNoOpTracer(), nil
	}

	exporter, err := newSpanExporter(context.Background(), cfg)
	if err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "failed to create OTLP trace exporter", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg.ServiceName)),
	)
	otel.SetTracerProvider(provider)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := provider.Shutdown(ctx); err != nil {
				logger.Warnf("Tracer: OTLP shutdown: %v", err)
			}
			return nil
		},
	})
	return NewOpenTelemetryTracer(provider), nil
}

// Module provides the MetricRecorder and Tracer chosen by configuration.
var Module = fx.Options(
	fx.Provide(NewMetricRecorder),
	fx.Provide(NewTracer),
)
