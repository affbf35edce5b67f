// Package file provides a scan store that persists the collection as a single
// JSON document.
//
// # Layout
//
//	<data-dir>/scans.json   ordered array of scan records
//	<data-dir>/images/      one <uuid>.jpg blob per record
//
// The document is rewritten in full on every mutation, through a temporary
// file and a rename, so a crash never leaves a half-written collection.
// Encoding is deterministic: persisting an unchanged collection twice yields
// identical bytes.
//
// # Thread Safety
//
// All operations are safe for concurrent use within one process. Several
// processes writing the same data directory are not supported.
package file
