// Package stagegate holds the per-stage readiness checks evaluated before an
// album may advance. Every check inspects the filesystem read-only and
// returns an operator-facing reason on failure.
package stagegate
