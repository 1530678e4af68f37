// Package graphs holds the chart units: one operations.Step per chart that
// loads its Statistics Canada tables, derives the series, renders the PNG and
// prints the summary statistics.
//
// Every input path is relative to the configured data directory, in one
// folder per topic (employment/, exports/, gdp/ and so on). Units share a
// read-only Env and can run concurrently.
//
//	env := graphs.NewEnv(cfg, paths, logger)
//	registry := operations.NewRegistry()
//	if err := graphs.Register(registry, env); err != nil {
//		return err
//	}
package graphs
