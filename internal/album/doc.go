// Package album defines the persisted album aggregate: the track list, the
// ten-stage pipeline constants, the operator-facing status enum, and the
// invariants the rest of the system relies on (stable track ids, immutable
// original filenames, insertion-ordered tracks, bounded stage numbers).
//
// Treat this package as the single source of truth for document semantics;
// layout changes bump SchemaVersion.
package album
