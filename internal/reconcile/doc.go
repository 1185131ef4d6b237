// Package reconcile re-derives the logical-track to physical-file mapping of
// an album after external tools have renamed, moved, split, or regenerated
// files. Matching runs a ladder per track (track-number index with title
// confirmation, strict title index, exact-name fallback), pairs vocal tracks
// with regenerated instrumental partners through a looser title index, and
// appends orphaned instrumentals as new synthetic tracks. Unmatched rows are
// surfaced for manual assignment, never dropped.
package reconcile
