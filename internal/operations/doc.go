// Package operations runs the chart units as one batch.
//
// Steps are registered in a fixed order and executed either one at a time or
// concurrently under a worker limit. Each step writes its report text to a
// private buffer, so a failing or panicking step never disturbs its siblings
// and the captured output is printed in registration order.
//
// Core Components:
//
// Registry: keeps the ordered list of steps and resolves a subset by ID.
//
// Manager: executes the selected steps, records a StepState for each and
// traces the run with OpenTelemetry.
//
// Reporter: prints the per-step banner and the end-of-run summary.
//
// Example usage:
//
//	registry := operations.NewRegistry()
//	registry.MustRegister(steps...)
//
//	cfg := operations.ConfigFromBatch(config.BatchConfig{Parallel: true, Workers: 4})
//	manager := operations.NewManager(registry, cfg, tracer, operations.NewReporter(os.Stdout, imagesDir), logger)
//	state, err := manager.Execute(ctx, operations.OperationRequest{})
package operations
