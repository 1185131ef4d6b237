// Package logging builds the slog loggers used across trackflow and the
// attribute helpers that keep field names consistent. Components receive
// their logger by injection (NewComponentLogger); nothing logs through a
// package-level singleton.
package logging
