package operations

import (
	"time"
)

// OperationStatusValue represents the overall run status
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState represents the complete state of a batch run. Steps keeps
// the order in which the steps were selected.
type OperationState struct {
	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`
	Steps     []*StepState         `json:"steps"`
}

// NewOperationState creates a new run state with one pending entry per step
func NewOperationState(id string, steps []Step) *OperationState {
	state := &OperationState{
		ID:     id,
		Status: OperationStatusPending,
		Steps:  make([]*StepState, len(steps)),
	}
	for i, step := range steps {
		state.Steps[i] = NewStepState(step.ID(), step.Name())
	}
	return state
}

// Start marks the run as running
func (p *OperationState) Start() {
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Finish marks the run as completed, failed or cancelled from its steps
func (p *OperationState) Finish(cancelled bool) {
	now := time.Now()
	p.EndTime = &now
	switch {
	case cancelled:
		p.Status = OperationStatusCancelled
	case p.HasFailures():
		p.Status = OperationStatusFailed
	default:
		p.Status = OperationStatusCompleted
	}
}

// GetStep returns the state of a step by ID
func (p *OperationState) GetStep(id string) *StepState {
	for _, s := range p.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Duration returns how long the run took
func (p *OperationState) Duration() time.Duration {
	if p.StartTime.IsZero() {
		return 0
	}
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// Succeeded returns the steps that completed, in run order
func (p *OperationState) Succeeded() []*StepState {
	return p.filter(func(s *StepState) bool { return s.Status == StepStatusCompleted })
}

// Failed returns the steps that failed or were skipped, in run order
func (p *OperationState) Failed() []*StepState {
	return p.filter(func(s *StepState) bool {
		return s.Status == StepStatusFailed || s.Status == StepStatusSkipped
	})
}

// HasFailures reports whether any step did not complete
func (p *OperationState) HasFailures() bool {
	return len(p.Failed()) > 0
}

// Err returns the step failures as an ErrorList, or nil
func (p *OperationState) Err() error {
	var errs ErrorList
	for _, s := range p.Failed() {
		errs.Add(asOperationError(s.ID, s.Error))
	}
	if !errs.HasErrors() {
		return nil
	}
	return &errs
}

func (p *OperationState) filter(keep func(*StepState) bool) []*StepState {
	var out []*StepState
	for _, s := range p.Steps {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func asOperationError(step string, err error) *OperationError {
	if opErr, ok := err.(*OperationError); ok {
		return opErr
	}
	return NewExecutionError(step, err)
}
