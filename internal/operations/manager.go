package operations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/infrastructure"
)

// Manager orchestrates batch execution
type Manager struct {
	registry *Registry
	config   *Config
	tracer   *OperationTracer
	reporter *Reporter
	logger   *slog.Logger
}

// NewManager creates a new batch manager. Nil arguments fall back to an
// empty registry, the default config, a no-op tracer and a silent reporter.
func NewManager(registry *Registry, config *Config, tracer *OperationTracer, reporter *Reporter, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	if tracer == nil {
		tracer, _ = NewOperationTracer(nil)
	}
	if reporter == nil {
		reporter = NewReporter(nil, "")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Manager{
		registry: registry,
		config:   config,
		tracer:   tracer,
		reporter: reporter,
		logger:   infrastructure.WithComponent(logger, "batch"),
	}
}

// Execute runs the requested steps, or every registered step when none are
// named. Step failures are recorded in the returned state and never abort
// sibling steps; the error return is reserved for an unusable request.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationState, error) {
	if req.ID == "" {
		req.ID = fmt.Sprintf("batch-%d", time.Now().Unix())
	}

	steps, err := m.registry.Select(req.Steps...)
	if err != nil {
		m.logger.ErrorContext(ctx, "step_selection_failed",
			slog.String("operation_id", req.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, m.config.ExecutionMode, len(steps))
	defer span.End()

	state := NewOperationState(req.ID, steps)
	state.Start()

	m.logger.InfoContext(ctx, "batch_started",
		slog.String("operation_id", req.ID),
		slog.String("mode", string(m.config.ExecutionMode)),
		slog.Int("step_count", len(steps)))

	if m.config.ExecutionMode == ExecutionModeParallel {
		m.executeParallel(ctx, state, steps)
	} else {
		m.executeSequential(ctx, state, steps)
	}

	state.Finish(ctx.Err() != nil)
	m.tracer.RecordOperationCompletion(ctx, span, state)
	m.reporter.Summary(state)

	m.logger.InfoContext(ctx, "batch_finished",
		slog.String("operation_id", req.ID),
		slog.String("status", string(state.Status)),
		slog.Int("succeeded", len(state.Succeeded())),
		slog.Int("failed", len(state.Failed())),
		slog.Duration("duration", state.Duration()))

	return state, nil
}

// executeSequential executes steps one by one, reporting each as it runs
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) {
	for i, step := range steps {
		stepState := state.Steps[i]
		if ctx.Err() != nil {
			stepState.Skip(NewCancellationError(step.ID()))
			continue
		}

		m.reporter.StepStarted(stepState)
		m.executeStep(ctx, state.ID, step, stepState)
		m.reporter.StepFinished(stepState)
	}
}

// executeParallel runs up to MaxConcurrency steps at once. Output is
// buffered per step and reported in registration order once all finish.
func (m *Manager) executeParallel(ctx context.Context, state *OperationState, steps []Step) {
	limit := m.config.MaxConcurrency
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, step := range steps {
		stepState := state.Steps[i]
		g.Go(func() error {
			if ctx.Err() != nil {
				stepState.Skip(NewCancellationError(step.ID()))
				return nil
			}
			m.executeStep(ctx, state.ID, step, stepState)
			return nil
		})
	}
	_ = g.Wait()

	for _, stepState := range state.Steps {
		m.reporter.StepStarted(stepState)
		m.reporter.StepFinished(stepState)
	}
}

// executeStep runs a single step with its output captured
func (m *Manager) executeStep(ctx context.Context, operationID string, step Step, stepState *StepState) {
	ctx = infrastructure.WithUnit(ctx, step.ID())
	ctx, span := m.tracer.TraceStepExecution(ctx, operationID, step.ID())
	defer span.End()

	timeout := m.config.GetStepTimeout(step.ID())
	stepCtx, cancel := stepDeadline(ctx, timeout)
	defer cancel()

	m.logger.InfoContext(ctx, "step_started",
		slog.String("operation_id", operationID),
		slog.String("step", step.Name()))

	var out bytes.Buffer
	stepState.Start()
	err := safeExecute(stepCtx, step, &out)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && timeout > 0 {
			err = NewTimeoutError(step.ID(), timeout.String())
		}
		stepState.Fail(err, out.String())
		infrastructure.WithError(m.logger, err).ErrorContext(ctx, "step_failed",
			slog.String("operation_id", operationID),
			slog.String("step", step.Name()),
			slog.Duration("duration", stepState.Duration()))
	} else {
		stepState.Complete(out.String())
		m.logger.InfoContext(ctx, "step_completed",
			slog.String("operation_id", operationID),
			slog.String("step", step.Name()),
			slog.Duration("duration", stepState.Duration()))
	}

	m.tracer.RecordStepCompletion(ctx, span, stepState)
}

// safeExecute runs step.Execute, converting a panic into an error
func safeExecute(ctx context.Context, step Step, out *bytes.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(step.ID(), r)
		}
	}()
	return step.Execute(ctx, out)
}
