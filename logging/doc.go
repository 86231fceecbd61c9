// Package logging provides a tiny abstraction over slog so downstream code can
// depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. The decision engine logs per-tick diagnostics (narrowing,
// ranking, selection outcomes) through this interface only.
package logging
