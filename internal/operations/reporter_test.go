package operations

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "/tmp/images")

	ok := NewStepState("employment", "Employment Graph")
	ok.Complete("")
	bad := NewStepState("tariff-timeline", "Tariff Timeline Graph")
	bad.Fail(errors.New("open tariff-weights.csv: no such file"), "")

	r.Start("/work")
	r.StepStarted(ok)
	r.StepFinished(ok)
	r.StepStarted(bad)
	r.StepFinished(bad)
	r.Summary(&OperationState{Steps: []*StepState{ok, bad}})

	want := "Starting chart generation...\n" +
		"Working directory: /work\n" +
		"\n==================================================\n" +
		"Running: Employment Graph\n" +
		"==================================================\n" +
		"✓ SUCCESS: Employment Graph\n" +
		"\n==================================================\n" +
		"Running: Tariff Timeline Graph\n" +
		"==================================================\n" +
		"✗ ERROR: Tariff Timeline Graph\n" +
		"Error output:\n" +
		"open tariff-weights.csv: no such file\n" +
		"\n============================================================\n" +
		"CHART GENERATION SUMMARY\n" +
		"============================================================\n" +
		"\n✓ SUCCESSFUL (1/2):\n" +
		"  - Employment Graph\n" +
		"\n✗ FAILED (1/2):\n" +
		"  - Tariff Timeline Graph\n" +
		"\nAll generated images saved to: /tmp/images\n" +
		"\n1 chart(s) had errors.\n"

	assert.Equal(t, want, buf.String())
}

func TestReporter_NilWriter(t *testing.T) {
	r := NewReporter(nil, "")
	assert.NotPanics(t, func() {
		r.Summary(&OperationState{})
	})
}
