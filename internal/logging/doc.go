// Package logging assembles structured slog loggers and formatting helpers used
// across uploadnotify.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys (task id, notification id,
// status) so every component tags its lines the same way. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape as the rest of the system.
package logging
