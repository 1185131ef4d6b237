// Package instrumental classifies audio filenames as instrumental variants
// using a configurable keyword set, and normalizes filenames to comparable
// titles (strict and loose forms) for track reconciliation. Both the
// reconciler and the Demucs target detector share this package so the two
// classifiers can never disagree about what counts as instrumental.
package instrumental
