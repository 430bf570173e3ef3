// Package sqlite provides a SQLite-backed catalog sink.
//
// Unlike the CSV adapter, which writes one file per phase snapshot,
// the SQLite sink accumulates rows keyed by (label, name): re-writing
// a repository under the same label unions its provenance and keeps
// the latest url and description. This makes repeated runs against the
// same database converge instead of piling up files.
package sqlite
