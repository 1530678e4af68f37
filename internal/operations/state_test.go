package operations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepStateTransitions(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(s *StepState)
		wantStatus StepStatus
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "complete",
			apply:      func(s *StepState) { s.Start(); s.Complete("done\n") },
			wantStatus: StepStatusCompleted,
			wantOutput: "done\n",
		},
		{
			name:       "fail keeps partial output",
			apply:      func(s *StepState) { s.Start(); s.Fail(errors.New("boom"), "partial\n") },
			wantStatus: StepStatusFailed,
			wantOutput: "partial\n",
			wantErr:    true,
		},
		{
			name:       "skip before start",
			apply:      func(s *StepState) { s.Skip(NewCancellationError("employment")) },
			wantStatus: StepStatusSkipped,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepState("employment", "Employment Graph")
			assert.Equal(t, StepStatusPending, s.Status)
			assert.Zero(t, s.Duration())

			tt.apply(s)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.Equal(t, tt.wantOutput, s.Output)
			assert.Equal(t, tt.wantErr, s.Error != nil)
			assert.Equal(t, tt.wantStatus == StepStatusCompleted, s.Succeeded())
			assert.NotNil(t, s.EndTime)
		})
	}
}

func TestOperationState(t *testing.T) {
	steps := []Step{noopStep("a"), noopStep("b"), noopStep("c")}

	t.Run("all completed", func(t *testing.T) {
		state := NewOperationState("run-1", steps)
		state.Start()
		for _, s := range state.Steps {
			s.Start()
			s.Complete("")
		}
		state.Finish(false)

		assert.Equal(t, OperationStatusCompleted, state.Status)
		assert.Len(t, state.Succeeded(), 3)
		assert.False(t, state.HasFailures())
		assert.NoError(t, state.Err())
	})

	t.Run("failures in run order", func(t *testing.T) {
		state := NewOperationState("run-2", steps)
		state.Start()
		state.GetStep("a").Fail(errors.New("missing file"), "")
		state.GetStep("b").Complete("")
		state.GetStep("c").Skip(NewCancellationError("c"))
		state.Finish(false)

		assert.Equal(t, OperationStatusFailed, state.Status)
		require.Len(t, state.Failed(), 2)
		assert.Equal(t, "a", state.Failed()[0].ID)
		assert.Equal(t, "c", state.Failed()[1].ID)

		var errs *ErrorList
		require.ErrorAs(t, state.Err(), &errs)
		require.Len(t, errs.Errors, 2)
		assert.Equal(t, "a", errs.Errors[0].Step)
		assert.Equal(t, ErrorTypeExecution, errs.Errors[0].Type)
		assert.Equal(t, "c", errs.Errors[1].Step)
		assert.Equal(t, ErrorTypeCancellation, errs.Errors[1].Type)

		resp := NewOperationResponse(state)
		assert.Equal(t, "run-2", resp.ID)
		assert.Equal(t, 1, resp.Succeeded)
		assert.Equal(t, 2, resp.Failed)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("cancelled", func(t *testing.T) {
		state := NewOperationState("run-3", steps)
		state.Start()
		state.Finish(true)
		assert.Equal(t, OperationStatusCancelled, state.Status)
		assert.Nil(t, state.GetStep("missing"))
	})
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithExecutionMode(ExecutionModeParallel).
		WithMaxConcurrency(2).
		WithStepTimeout("tariff-timeline", 90*time.Second).
		Build()

	assert.Equal(t, ExecutionModeParallel, cfg.ExecutionMode)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, 90*time.Second, cfg.GetStepTimeout("tariff-timeline"))
	assert.Zero(t, cfg.GetStepTimeout("employment"))

	cfg = NewConfigBuilder().WithDefaultTimeout(30 * time.Second).Build()
	assert.Equal(t, 30*time.Second, cfg.GetStepTimeout("employment"))
}
