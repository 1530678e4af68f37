package infrastructure

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// contextKey is a type for context keys
type contextKey string

const (
	// TraceIDContextKey is the key for storing trace ID in context
	TraceIDContextKey contextKey = "trace_id"
	// UnitContextKey holds the ID of the chart unit being run
	UnitContextKey contextKey = "unit"
)

// UnknownErrorType labels errors that carry no type of their own.
const UnknownErrorType = "unknown"

// WithTraceID adds a trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

// EnsureTraceID gives ctx a fresh UUID trace ID unless it already has one.
// One batch run shares a single trace ID across all of its units.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, uuid.NewString())
	}
	return ctx
}

// WithUnit records the chart unit being run in the context
func WithUnit(ctx context.Context, unit string) context.Context {
	return context.WithValue(ctx, UnitContextKey, unit)
}

// GetUnit retrieves the chart unit from context
func GetUnit(ctx context.Context) string {
	if unit, ok := ctx.Value(UnitContextKey).(string); ok {
		return unit
	}
	return ""
}

// contextAttrs returns the trace_id and unit attributes carried by ctx
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if traceID := GetTraceID(ctx); traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}
	if unit := GetUnit(ctx); unit != "" {
		attrs = append(attrs, slog.String("unit", unit))
	}
	return attrs
}

// WithComponent returns a logger tagged with the subsystem it logs for
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithRun pins the trace_id and unit carried by ctx onto logger, for records
// written without a context. Loggers used with the *Context methods get these
// fields from the handler and must not be pinned as well.
func WithRun(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := contextAttrs(ctx)
	if len(attrs) == 0 {
		return logger
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return logger.With(args...)
}

// labeled is implemented by errors that name their own kind.
type labeled interface {
	Label() string
}

// ErrorType names the kind of err for log fields and metric labels. The type
// of a wrapped AppError wins over any outer label.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	var l labeled
	if errors.As(err, &l) {
		return l.Label()
	}
	return UnknownErrorType
}

// WithError returns a logger carrying the error message and its error_type
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(
		slog.String("error", err.Error()),
		slog.String("error_type", ErrorType(err)))
}
