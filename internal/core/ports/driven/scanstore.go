package driven

import (
	"context"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// ScanStore owns the ordered collection of completed scans and their image blobs.
//
// The in-memory collection is mirrored to durable storage on every mutation.
// A single writer is assumed; concurrent mutation from several processes is
// not supported.
type ScanStore interface {
	// Load replaces the in-memory collection with the persisted one.
	// A missing collection is empty, not an error. An unreadable one leaves
	// the collection empty and returns an error wrapping domain.ErrCorruptCollection.
	Load(ctx context.Context) error

	// Persist writes the whole collection. Two calls without an intervening
	// mutation produce identical output.
	Persist(ctx context.Context) error

	// Add appends a record and persists the collection.
	// The record's image blob must already have been saved with SaveImage.
	Add(ctx context.Context, record domain.ScanRecord) error

	// Delete removes the records with the given IDs and their image blobs,
	// then persists once for the whole batch. Unknown IDs are ignored.
	// Blob removal failures are logged and do not stop the deletion.
	Delete(ctx context.Context, ids []string) error

	// List returns the collection in insertion order. No I/O.
	List(ctx context.Context) ([]domain.ScanRecord, error)

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (*domain.ScanRecord, error)

	// Move repositions the record at index from to index to and persists.
	Move(ctx context.Context, from, to int) error

	// SaveImage writes a blob under a freshly generated name and returns it.
	SaveImage(ctx context.Context, blob []byte) (string, error)

	// LoadImage reads the blob stored under ref.
	LoadImage(ctx context.Context, ref string) ([]byte, error)

	// RemoveImage deletes a blob that no record references.
	RemoveImage(ctx context.Context, ref string) error

	// Close releases store resources.
	Close() error
}

// ScanStoreFiles is implemented by stores backed by local files.
// Backup uses it to locate what to upload.
type ScanStoreFiles interface {
	// CollectionPath is the persisted collection document or database.
	CollectionPath() string

	// ImagePath is the local path of the blob stored under ref. It fails with
	// domain.ErrInvalidInput when ref does not name a file in the blob directory.
	ImagePath(ref string) (string, error)

	// Checkpoint makes CollectionPath self-contained so it can be copied.
	Checkpoint(ctx context.Context) error
}
