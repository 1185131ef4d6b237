// Package demucs classifies which album tracks need vocal separation and
// locates the accompaniment stems a separation run produced. It never runs
// the separator itself; the operator does that out of band.
package demucs
