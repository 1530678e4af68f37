package operations

import (
	"time"
)

// ExecutionMode defines how steps are executed
type ExecutionMode string

const (
	ExecutionModeSequential ExecutionMode = "sequential"
	ExecutionModeParallel   ExecutionMode = "parallel"
)

// DefaultMaxConcurrency bounds parallel runs when no limit is configured
const DefaultMaxConcurrency = 4

// OperationRequest represents a request to run a batch
type OperationRequest struct {
	ID    string   `json:"id"`
	Steps []string `json:"steps,omitempty"`
}

// OperationResponse summarises a finished batch run
type OperationResponse struct {
	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	Duration  time.Duration        `json:"duration"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Total     int                  `json:"total"`
}

// NewOperationResponse builds a response from a run state
func NewOperationResponse(state *OperationState) *OperationResponse {
	return &OperationResponse{
		ID:        state.ID,
		Status:    state.Status,
		Duration:  state.Duration(),
		Succeeded: len(state.Succeeded()),
		Failed:    len(state.Failed()),
		Total:     len(state.Steps),
	}
}
