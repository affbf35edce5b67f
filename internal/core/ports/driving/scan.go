package driving

import (
	"context"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// ScanService runs and manages saved scans.
type ScanService interface {
	// Capture classifies text, stores image and saves a new scan record.
	// On failure no record is created.
	Capture(ctx context.Context, text string, image []byte) (*domain.ScanRecord, error)

	// List returns saved scans in insertion order.
	List(ctx context.Context) ([]domain.ScanRecord, error)

	// Get retrieves a scan by ID.
	Get(ctx context.Context, id string) (*domain.ScanRecord, error)

	// Delete removes scans and their images.
	Delete(ctx context.Context, ids ...string) error

	// Image returns the stored image bytes for a scan.
	Image(ctx context.Context, id string) ([]byte, error)

	// Move repositions a scan within the collection.
	Move(ctx context.Context, from, to int) error
}
