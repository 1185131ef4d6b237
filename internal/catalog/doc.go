// Package catalog maintains a SQLite index of every album in the work
// directory. It exists so listing does not require opening each state
// document; the per-album documents remain the source of truth and the
// catalog can be rebuilt from them at any time.
package catalog
