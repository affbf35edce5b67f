package driving

import "context"

// BackupService copies the scan collection off-site.
type BackupService interface {
	// Backup uploads the collection document and every referenced image.
	Backup(ctx context.Context) (*BackupReport, error)
}

// BackupReport summarises a completed backup.
type BackupReport struct {
	// Location is the target endpoint and bucket.
	Location string

	// Prefix is the key prefix the objects were written under.
	Prefix string

	// Objects is the number of objects uploaded.
	Objects int

	// Bytes is the total number of bytes uploaded.
	Bytes int64

	// Missing lists image references that had no local file.
	Missing []string
}
