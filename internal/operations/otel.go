package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/infrastructure"
)

const (
	TracerName = "lumbercharts.batch"
)

// OperationTracer provides OpenTelemetry instrumentation for batch runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// NewOperationTracer creates a tracer over the given providers. A nil
// providers value yields a tracer that records nothing.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	if providers == nil {
		return &OperationTracer{tracer: tracenoop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	metrics, err := infrastructure.CreateRunMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metrics: %w", err)
	}

	return &OperationTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceOperationExecution creates a span for the entire batch run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, mode ExecutionMode, stepCount int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "batch.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.mode", string(mode)),
			attribute.Int("operation.steps", stepCount),
		),
	)
}

// TraceStepExecution creates a span for one step
func (pt *OperationTracer) TraceStepExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("batch.step.%s", stepID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStepCompletion records step completion on its span and the run metrics
func (pt *OperationTracer) RecordStepCompletion(ctx context.Context, span trace.Span, state *StepState) {
	status := "success"
	if !state.Succeeded() {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", state.Duration().Seconds()),
		attribute.Int("step.output_bytes", len(state.Output)),
	)

	if state.Error != nil {
		span.RecordError(state.Error)
		span.SetStatus(codes.Error, state.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "step completed successfully")
	}

	infrastructure.RecordUnitMetrics(ctx, pt.metrics, state.ID, state.Duration(), state.Error)
}

// RecordOperationCompletion records the run outcome on its span
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, state *OperationState) {
	duration := state.Duration()
	span.SetAttributes(
		attribute.String("operation.status", string(state.Status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
		attribute.Int("operation.succeeded", len(state.Succeeded())),
		attribute.Int("operation.failed", len(state.Failed())),
	)

	if pt.metrics != nil {
		pt.metrics.RunDuration.Record(ctx, duration.Seconds())
	}

	if state.Status == OperationStatusCompleted {
		span.SetStatus(codes.Ok, "run completed successfully")
	} else {
		span.SetStatus(codes.Error, fmt.Sprintf("run finished with status: %s", state.Status))
	}
}

// stepDeadline returns the context for one step under its timeout
func stepDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
