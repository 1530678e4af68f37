package operations

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError(t *testing.T) {
	cause := errors.New("file not found")

	tests := []struct {
		name     string
		err      *OperationError
		wantType ErrorType
		wantMsg  string
	}{
		{"execution", NewExecutionError("employment", cause), ErrorTypeExecution, "[execution] employment: step execution failed: file not found"},
		{"panic", NewPanicError("pie", "index out of range"), ErrorTypePanic, "[panic] pie: step panicked: index out of range"},
		{"timeout", NewTimeoutError("slow", "1s"), ErrorTypeTimeout, "[timeout] slow: step exceeded timeout of 1s"},
		{"cancellation", NewCancellationError("late"), ErrorTypeCancellation, "[cancellation] late: run was cancelled"},
		{"not found", NewNotFoundError("nope"), ErrorTypeNotFound, "[not_found] nope: step not registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantType, GetErrorType(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}

	assert.ErrorIs(t, NewExecutionError("employment", cause), cause)
	assert.Equal(t, ErrorTypeExecution, GetErrorType(cause))
	assert.Empty(t, GetErrorType(nil))

	var nilErr *OperationError
	assert.Equal(t, "unknown operation error", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	assert.False(t, list.HasErrors())
	assert.Equal(t, "no errors", list.Error())

	list.Add(nil)
	list.Add(NewNotFoundError("a"))
	assert.Equal(t, "[not_found] a: step not registered", list.Error())

	list.Add(NewCancellationError("b"))
	list.Add(NewTimeoutError("a", "2s"))
	assert.True(t, list.HasErrors())
	assert.Contains(t, list.Error(), "3 errors occurred")
	assert.Len(t, list.Errors, 3)
}

func TestErrorList_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		errs     []*OperationError
		wantType ErrorType
	}{
		{"single not found", []*OperationError{NewNotFoundError("nope")}, ErrorTypeNotFound},
		{"first entry wins", []*OperationError{NewCancellationError("a"), NewNotFoundError("b")}, ErrorTypeCancellation},
		{"empty list", nil, ErrorTypeExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &ErrorList{}
			for _, err := range tt.errs {
				list.Add(err)
			}
			assert.Equal(t, tt.wantType, GetErrorType(list))
			assert.Equal(t, tt.wantType, GetErrorType(fmt.Errorf("select: %w", list)))
			assert.Len(t, list.Unwrap(), len(tt.errs))
		})
	}

	cause := errors.New("missing file")
	list := &ErrorList{}
	list.Add(NewExecutionError("employment", cause))
	assert.ErrorIs(t, list, cause)

	var opErr *OperationError
	assert.ErrorAs(t, list, &opErr)
	assert.Equal(t, "employment", opErr.Step)
}
