package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// Ensure ScanService implements the interface.
var _ driving.ScanService = (*ScanService)(nil)

// ScanService runs the capture cycle and manages saved scans.
type ScanService struct {
	store    driven.ScanStore
	analysis driving.AnalysisService
	now      func() time.Time
	newID    func() string
}

// NewScanService creates a scan service.
func NewScanService(store driven.ScanStore, analysis driving.AnalysisService) *ScanService {
	return &ScanService{
		store:    store,
		analysis: analysis,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Capture classifies text, stores the image and appends a new record.
// If the record cannot be saved the image is removed again.
func (s *ScanService) Capture(ctx context.Context, text string, image []byte) (*domain.ScanRecord, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: scan requires an image", domain.ErrInvalidInput)
	}

	analysis, err := s.analysis.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyse: %w", err)
	}

	ref, err := s.store.SaveImage(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	record := domain.ScanRecord{
		ID:             s.newID(),
		Timestamp:      s.now(),
		RecognizedText: text,
		Ingredients:    analysis.Ingredients,
		ImageRef:       ref,
	}

	if err := s.store.Add(ctx, record); err != nil {
		if rmErr := s.store.RemoveImage(ctx, ref); rmErr != nil {
			logger.Warn("orphaned image %s: %v", ref, rmErr)
		}
		return nil, fmt.Errorf("save scan: %w", err)
	}

	logger.Info("saved scan %s with %d ingredients", record.ID, len(record.Ingredients))
	return &record, nil
}

// List returns saved scans in order.
func (s *ScanService) List(ctx context.Context) ([]domain.ScanRecord, error) {
	return s.store.List(ctx)
}

// Get retrieves a scan by ID.
func (s *ScanService) Get(ctx context.Context, id string) (*domain.ScanRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: scan id required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Delete removes scans and their images in one batch.
func (s *ScanService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.store.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete scans: %w", err)
	}
	logger.Info("deleted %d scan(s)", len(ids))
	return nil
}

// Image returns the stored image for a scan.
func (s *ScanService) Image(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.LoadImage(ctx, record.ImageRef)
}

// Move repositions a scan within the collection.
func (s *ScanService) Move(ctx context.Context, from, to int) error {
	if err := s.store.Move(ctx, from, to); err != nil {
		return fmt.Errorf("move scan: %w", err)
	}
	return nil
}
