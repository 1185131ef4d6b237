// Package faults defines the error taxonomy shared across the workflow:
// sentinel markers that classify a failure (validation, persistence,
// not-found, configuration) plus a Wrap helper that attaches component and
// operation context while preserving errors.Is classification.
package faults
