// Package state persists one album aggregate as a JSON document in the
// album's working directory. Saves replace the whole document atomically and
// are guarded by an advisory file lock; there is no partial-patch path, so a
// document read back is always internally consistent.
package state
