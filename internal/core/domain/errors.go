package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Persistence Errors.

	// ErrCorruptCollection indicates the persisted scan collection exists
	// but could not be read or decoded. An absent collection is not an error.
	ErrCorruptCollection = errors.New("scan collection is corrupt")

	// ErrCorruptDataset indicates the reference dataset exists but could not be decoded.
	// Classification continues with an empty dataset.
	ErrCorruptDataset = errors.New("reference dataset is corrupt")

	// ErrBlobWrite indicates an image blob could not be written to storage.
	ErrBlobWrite = errors.New("image blob write failed")

	// ErrBackupUnavailable indicates off-site backup is not configured.
	ErrBackupUnavailable = errors.New("backup target not configured")
)
