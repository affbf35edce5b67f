// Package sqlite provides a scan store backed by a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Scan records and their classified ingredients live in two
// tables; image blobs stay on disk next to the database.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
//	<data-dir>/scans.db
//	<data-dir>/images/
//
// # Semantics
//
// The store keeps the ordered collection in memory like the file backend.
// Persist rewrites both tables inside one transaction, so a batch delete or
// a reorder is either fully stored or not at all.
package sqlite
