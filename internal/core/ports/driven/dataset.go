package driven

import (
	"context"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// DatasetLoader loads the reference ingredient lists.
//
// A missing resource yields an empty dataset and a nil error. A resource that
// exists but cannot be decoded yields an empty dataset and an error wrapping
// domain.ErrCorruptDataset; callers log it and continue.
type DatasetLoader interface {
	// Load reads and decodes the dataset. The result is never nil.
	Load(ctx context.Context) (*domain.ReferenceDataset, error)

	// Source describes where the dataset is read from.
	Source() string
}
