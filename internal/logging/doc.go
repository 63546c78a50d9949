// Package logging assembles the structured slog loggers shared by the
// viralclip daemon and CLI.
//
// It centralizes level and format plumbing, exposes attr helper functions so
// call sites do not import slog directly, and provides a no-op logger for
// tests and wiring code that cannot fail. Prefer these constructors over
// hand-rolled slog setup so every component emits data with the same shape.
package logging
