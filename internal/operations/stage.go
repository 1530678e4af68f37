package operations

import (
	"context"
	"io"
	"time"
)

// Step represents a single unit of work in a batch run
type Step interface {
	// ID returns the unique identifier for this Step
	ID() string

	// Name returns the human-readable name for this Step
	Name() string

	// Execute runs the Step. Report text goes to out; the manager captures
	// it so concurrent steps never interleave.
	Execute(ctx context.Context, out io.Writer) error
}

// StepStatus represents the current status of a Step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState represents the runtime state of a Step. Each state is owned by
// the goroutine running its step until the run finishes.
type StepState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Output    string     `json:"output,omitempty"`
	Error     error      `json:"-"`
}

// NewStepState creates a new Step state with default values
func NewStepState(id, name string) *StepState {
	return &StepState{
		ID:     id,
		Name:   name,
		Status: StepStatusPending,
	}
}

// Start marks the Step as active and sets the start time
func (s *StepState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the Step as completed and sets the end time
func (s *StepState) Complete(output string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
	s.Output = output
}

// Fail marks the Step as failed with the given error
func (s *StepState) Fail(err error, output string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
	s.Output = output
}

// Skip marks the Step as skipped with the given reason
func (s *StepState) Skip(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusSkipped
	s.Error = err
}

// Duration returns the duration of the Step execution
func (s *StepState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// Succeeded reports whether the Step completed without error
func (s *StepState) Succeeded() bool {
	return s.Status == StepStatusCompleted
}

// BaseStage provides the identity half of a Step implementation
type BaseStage struct {
	id   string
	name string
}

// NewBaseStage creates a new base Step
func NewBaseStage(id, name string) BaseStage {
	return BaseStage{id: id, name: name}
}

// ID returns the Step ID
func (b *BaseStage) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Name returns the Step name
func (b *BaseStage) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// StepFunc adapts a function to the Step interface
type StepFunc struct {
	BaseStage
	fn func(ctx context.Context, out io.Writer) error
}

// NewStepFunc creates a Step that runs fn
func NewStepFunc(id, name string, fn func(ctx context.Context, out io.Writer) error) *StepFunc {
	return &StepFunc{BaseStage: NewBaseStage(id, name), fn: fn}
}

// Execute runs the wrapped function
func (s *StepFunc) Execute(ctx context.Context, out io.Writer) error {
	return s.fn(ctx, out)
}
