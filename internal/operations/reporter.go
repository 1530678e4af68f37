package operations

import (
	"fmt"
	"io"
	"strings"
)

const (
	bannerWidth  = 50
	summaryWidth = 60
)

// Reporter prints the per-step banners and the end-of-run summary
type Reporter struct {
	w         io.Writer
	imagesDir string
}

// NewReporter creates a reporter writing to w. A nil writer discards output.
func NewReporter(w io.Writer, imagesDir string) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w, imagesDir: imagesDir}
}

// Start prints the run header
func (r *Reporter) Start(workDir string) {
	fmt.Fprintln(r.w, "Starting chart generation...")
	fmt.Fprintf(r.w, "Working directory: %s\n", workDir)
}

// StepStarted prints the banner for a step about to run
func (r *Reporter) StepStarted(s *StepState) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(r.w, "\n%s\nRunning: %s\n%s\n", rule, s.Name, rule)
}

// StepFinished prints the outcome of a step with its captured output
func (r *Reporter) StepFinished(s *StepState) {
	if s.Succeeded() {
		fmt.Fprintf(r.w, "✓ SUCCESS: %s\n", s.Name)
		if out := strings.TrimSpace(s.Output); out != "" {
			fmt.Fprintln(r.w, "Output:")
			fmt.Fprintln(r.w, s.Output)
		}
		return
	}

	fmt.Fprintf(r.w, "✗ ERROR: %s\n", s.Name)
	fmt.Fprintln(r.w, "Error output:")
	if s.Error != nil {
		fmt.Fprintln(r.w, s.Error.Error())
	}
	if out := strings.TrimSpace(s.Output); out != "" {
		fmt.Fprintln(r.w, s.Output)
	}
}

// Summary prints the successful and failed step lists and the final line
func (r *Reporter) Summary(state *OperationState) {
	total := len(state.Steps)
	succeeded := state.Succeeded()
	failed := state.Failed()

	rule := strings.Repeat("=", summaryWidth)
	fmt.Fprintf(r.w, "\n%s\nCHART GENERATION SUMMARY\n%s\n", rule, rule)

	fmt.Fprintf(r.w, "\n✓ SUCCESSFUL (%d/%d):\n", len(succeeded), total)
	for _, s := range succeeded {
		fmt.Fprintf(r.w, "  - %s\n", s.Name)
	}

	if len(failed) > 0 {
		fmt.Fprintf(r.w, "\n✗ FAILED (%d/%d):\n", len(failed), total)
		for _, s := range failed {
			fmt.Fprintf(r.w, "  - %s\n", s.Name)
		}
	}

	if r.imagesDir != "" {
		fmt.Fprintf(r.w, "\nAll generated images saved to: %s\n", r.imagesDir)
	}

	if len(failed) == 0 {
		fmt.Fprintln(r.w, "\nAll charts generated successfully!")
	} else {
		fmt.Fprintf(r.w, "\n%d chart(s) had errors.\n", len(failed))
	}
}
