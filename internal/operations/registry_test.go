package operations

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopStep(id string) Step {
	return NewStepFunc(id, "Step "+id, func(context.Context, io.Writer) error { return nil })
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, registry.Count())
	assert.NotNil(t, registry.List())

	registry.MustRegister(noopStep("a"), noopStep("b"), noopStep("c"))

	assert.Equal(t, 3, registry.Count())
	assert.Equal(t, []string{"a", "b", "c"}, registry.ListIDs())
	assert.True(t, registry.Has("b"))
	assert.False(t, registry.Has("z"))

	got, err := registry.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Step b", got.Name())

	_, err = registry.Get("z")
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
}

func TestRegistryRegisterErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr string
	}{
		{"nil step", nil, "nil step"},
		{"empty id", noopStep(""), "ID cannot be empty"},
		{"duplicate", noopStep("dup"), "already registered"},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register(noopStep("dup")))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.step)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Panics(t, func() { registry.MustRegister(noopStep("dup")) })
}

func TestRegistrySelect(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(noopStep("employment"), noopStep("export-share"), noopStep("tariff-timeline"))

	tests := []struct {
		name    string
		ids     []string
		want    []string
		missing []string
	}{
		{name: "all", ids: nil, want: []string{"employment", "export-share", "tariff-timeline"}},
		{name: "registration order wins", ids: []string{"tariff-timeline", "employment"}, want: []string{"employment", "tariff-timeline"}},
		{name: "duplicates collapse", ids: []string{"export-share", "export-share"}, want: []string{"export-share"}},
		{name: "unknown ids", ids: []string{"employment", "nope", "gone"}, missing: []string{"nope", "gone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := registry.Select(tt.ids...)
			if len(tt.missing) > 0 {
				require.Error(t, err)
				var list *ErrorList
				require.ErrorAs(t, err, &list)
				require.Len(t, list.Errors, len(tt.missing))
				for i, id := range tt.missing {
					assert.Equal(t, id, list.Errors[i].Step)
				}
				return
			}
			require.NoError(t, err)
			ids := make([]string, len(steps))
			for i, s := range steps {
				ids[i] = s.ID()
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
