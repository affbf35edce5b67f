package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/collection"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

const (
	// CollectionFile is the document name inside the data directory.
	CollectionFile = "scans.json"

	// ImagesDir is the blob directory name inside the data directory.
	ImagesDir = "images"
)

// Verify interface compliance.
var (
	_ driven.ScanStore      = (*Store)(nil)
	_ driven.ScanStoreFiles = (*Store)(nil)
)

// Store keeps the scan collection in memory and mirrors it to a JSON document.
type Store struct {
	mu      sync.RWMutex
	path    string
	blobs   *blob.Dir
	records []domain.ScanRecord

	// quarantine is set when Load found an unreadable document. The next
	// Persist moves it aside instead of overwriting it.
	quarantine bool
}

// NewStore creates a file store rooted at dataDir.
// The collection starts empty; call Load to read what was persisted.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	blobs, err := blob.NewDir(filepath.Join(dataDir, ImagesDir))
	if err != nil {
		return nil, err
	}

	return &Store{
		path:    filepath.Join(dataDir, CollectionFile),
		blobs:   blobs,
		records: []domain.ScanRecord{},
	}, nil
}

// Load replaces the in-memory collection with the persisted document.
func (s *Store) Load(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = []domain.ScanRecord{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no scan collection at %s", s.path)
		return nil
	}
	if err != nil {
		s.quarantine = true
		return fmt.Errorf("%w: reading %s: %v", domain.ErrCorruptCollection, s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	records, err := decodeCollection(data)
	if err != nil {
		s.quarantine = true
		return fmt.Errorf("loading %s: %w", s.path, err)
	}

	s.records = records
	logger.Debug("loaded %d scans from %s", len(records), s.path)
	return nil
}

// Persist writes the current collection.
func (s *Store) Persist(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.records)
}

// Add appends a record and persists. The record is dropped again if the write fails.
func (s *Store) Add(_ context.Context, record domain.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := collection.CheckAdd(s.records, record); err != nil {
		return err
	}

	next := collection.Append(s.records, record)
	if err := s.write(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Delete removes the records with the given IDs and their blobs.
func (s *Store) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := collection.Remove(s.records, ids)
	if len(removed) == 0 {
		return nil
	}

	for _, r := range removed {
		if err := s.blobs.Remove(r.ImageRef); err != nil {
			logger.Warn("scan %s: %v", r.ID, err)
		}
	}

	if err := s.write(kept); err != nil {
		return err
	}
	s.records = kept
	return nil
}

// List returns the collection in order.
func (s *Store) List(_ context.Context) ([]domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Clone(s.records), nil
}

// Get returns the record with the given ID.
func (s *Store) Get(_ context.Context, id string) (*domain.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collection.Find(s.records, id)
}

// Move repositions a record and persists.
func (s *Store) Move(_ context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := collection.Move(s.records, from, to)
	if err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// SaveImage stores an image blob.
func (s *Store) SaveImage(_ context.Context, data []byte) (string, error) {
	return s.blobs.Save(data)
}

// LoadImage reads an image blob.
func (s *Store) LoadImage(_ context.Context, ref string) ([]byte, error) {
	return s.blobs.Load(ref)
}

// RemoveImage deletes an image blob.
func (s *Store) RemoveImage(_ context.Context, ref string) error {
	return s.blobs.Remove(ref)
}

// CollectionPath returns the JSON document path.
func (s *Store) CollectionPath() string {
	return s.path
}

// ImagePath returns the path of a blob.
func (s *Store) ImagePath(ref string) (string, error) {
	return s.blobs.Path(ref)
}

// Checkpoint is a no-op; the document is always complete after a write.
func (s *Store) Checkpoint(_ context.Context) error {
	return nil
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error {
	return nil
}

// write atomically replaces the document with records. Callers hold mu.
func (s *Store) write(records []domain.ScanRecord) error {
	data, err := encodeCollection(records)
	if err != nil {
		return err
	}

	if s.quarantine {
		aside := s.path + ".corrupt"
		if err := os.Rename(s.path, aside); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("moving unreadable collection aside: %w", err)
		}
		logger.Warn("unreadable scan collection kept at %s", aside)
		s.quarantine = false
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scans-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing scans: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing scans: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing scans: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
