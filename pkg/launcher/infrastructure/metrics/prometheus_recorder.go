package metrics

import (
	"context"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.MetricRecorder interface.
// The launcher is short-lived, so the registry is written to a node_exporter textfile
// instead of being scraped.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	launchTotal           *prometheus.CounterVec
	launchDurationSeconds *prometheus.HistogramVec
	childExitCode         *prometheus.GaugeVec
	envAssignmentsTotal   prometheus.Counter
	envSkippedLinesTotal  prometheus.Counter
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		launchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dotlaunch_launch_total",
			Help: "Total number of launches by entry point and final status.",
		}, []string{"entrypoint", "status"}),
		launchDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dotlaunch_launch_duration_seconds",
			Help:    "Duration of launches, from start to child exit or detach.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entrypoint", "status"}),
		childExitCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dotlaunch_child_exit_code",
			Help: "Exit code of the last child process that ran to completion.",
		}, []string{"entrypoint"}),
		envAssignmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotlaunch_env_assignments_total",
			Help: "Total number of env file assignments applied.",
		}),
		envSkippedLinesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotlaunch_env_skipped_lines_total",
			Help: "Total number of env file lines skipped as malformed.",
		}),
	}

	registry.MustRegister(r.launchTotal)
	registry.MustRegister(r.launchDurationSeconds)
	registry.MustRegister(r.childExitCode)
	registry.MustRegister(r.envAssignmentsTotal)
	registry.MustRegister(r.envSkippedLinesTotal)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordLaunchStart only logs; counters are updated once the outcome is known.
func (r *PrometheusRecorder) RecordLaunchStart(ctx context.Context, execution *model.LaunchExecution) {
	logger.Debugf("Metrics: launch %s of '%s' started.", execution.ID, execution.EntryPoint)
}

// RecordLaunchEnd records the final status, the duration and the child's exit code.
func (r *PrometheusRecorder) RecordLaunchEnd(ctx context.Context, execution *model.LaunchExecution) {
	status := execution.Status.String()
	r.launchTotal.WithLabelValues(execution.EntryPoint, status).Inc()

	if execution.EndTime != nil {
		r.launchDurationSeconds.WithLabelValues(execution.EntryPoint, status).Observe(execution.Duration().Seconds())
	}
	if execution.Status == model.LaunchStatusExited {
		r.childExitCode.WithLabelValues(execution.EntryPoint).Set(float64(execution.ExitCode))
	}
	logger.Debugf("Metrics: launch %s ended with %s (exit code %d).", execution.ID, status, execution.ExitCode)
}

// RecordEnvLoaded records applied and skipped env file lines.
func (r *PrometheusRecorder) RecordEnvLoaded(ctx context.Context, applied, skipped int) {
	r.envAssignmentsTotal.Add(float64(applied))
	r.envSkippedLinesTotal.Add(float64(skipped))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The parent directory is created if needed.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
