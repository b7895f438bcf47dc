package metrics

import (
	"context"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// Span names used by the launcher.
const (
	SpanLaunch          = "launch"
	SpanWorkDir         = "workdir"
	SpanLoadEnv         = "load-env"
	SpanCheckEntryPoint = "check-entrypoint"
	SpanRunProcess      = "run-process"
)

// Tracer is an abstract interface for distributed tracing of a launch.
type Tracer interface {
	// StartLaunchSpan starts the root span for a launch.
	//
	// Returns: A context carrying the span, and a function that ends it.
	StartLaunchSpan(ctx context.Context, execution *model.LaunchExecution) (context.Context, func())

	// StartPhaseSpan starts a child span for one launcher phase (see the Span* names).
	StartPhaseSpan(ctx context.Context, name string) (context.Context, func())

	// RecordError records an error on the current span.
	//
	// module: The launcher step where the error occurred (e.g., "dotenv", "process").
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records an event on the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
