// Package workflow advances albums through the ten-stage pipeline. The
// engine consults a readiness gate before transitions and commits every
// mutation through the persistence layer, discarding the in-memory change
// when the commit fails. Backward transitions are not modeled.
package workflow
