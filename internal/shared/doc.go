// Package shared holds helpers used across the internal packages that do
// not belong to any one domain.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and helpers for writing dataset fixtures into t.TempDir().
package shared
