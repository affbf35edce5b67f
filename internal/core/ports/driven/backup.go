package driven

import (
	"context"
	"io"
)

// BackupTarget is an S3-compatible object store receiving scan backups.
type BackupTarget interface {
	// Upload stores size bytes from r under key.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Location describes the target for display (endpoint and bucket).
	Location() string
}
