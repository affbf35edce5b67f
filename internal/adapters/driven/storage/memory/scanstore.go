package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/collection"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
)

// Ensure ScanStore implements the interface.
var _ driven.ScanStore = (*ScanStore)(nil)

// ScanStore is an in-memory implementation of driven.ScanStore.
// Nothing survives the process; Load and Persist are no-ops.
type ScanStore struct {
	mu      sync.RWMutex
	records []domain.ScanRecord
	images  map[string][]byte
}

// NewScanStore creates a new in-memory scan store.
func NewScanStore() *ScanStore {
	return &ScanStore{
		records: []domain.ScanRecord{},
		images:  make(map[string][]byte),
	}
}

// Load is a no-op.
func (s *ScanStore) Load(_ context.Context) error {
	return nil
}

// Persist is a no-op.
func (s *ScanStore) Persist(_ context.Context) error {
	return nil
}

// Add appends a record.
func (s *ScanStore) Add(_ context.Context, record domain.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := collection.CheckAdd(s.records, record); err != nil {
		return err
	}
	s.records = collection.Append(s.records, record)
	return nil
}

// Delete removes records and their images.
func (s *ScanStore) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept, removed := collection.Remove(s.records, ids)
	for _, r := range removed {
		delete(s.images, r.ImageRef)
	}
	s.records = kept
	return nil
}

// List returns the records in order.
func (s *ScanStore) List(_ context.Context) ([]domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Clone(s.records), nil
}

// Get retrieves a record by ID.
func (s *ScanStore) Get(_ context.Context, id string) (*domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Find(s.records, id)
}

// Move repositions a record.
func (s *ScanStore) Move(_ context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := collection.Move(s.records, from, to)
	if err != nil {
		return err
	}
	s.records = next
	return nil
}

// SaveImage stores a copy of the blob.
func (s *ScanStore) SaveImage(_ context.Context, blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	ref := uuid.NewString() + ".jpg"
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[ref] = append([]byte(nil), blob...)
	return ref, nil
}

// LoadImage returns a copy of the stored blob.
func (s *ScanStore) LoadImage(_ context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.images[ref]
	if !ok {
		return nil, fmt.Errorf("image %s: %w", ref, domain.ErrNotFound)
	}
	return append([]byte(nil), blob...), nil
}

// RemoveImage drops a stored blob.
func (s *ScanStore) RemoveImage(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, ref)
	return nil
}

// Close is a no-op.
func (s *ScanStore) Close() error {
	return nil
}
