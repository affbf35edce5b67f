package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analysis *domain.Analysis
	err      error
	lastText string
}

func (m *mockAnalysisService) Analyze(_ context.Context, text string) (*domain.Analysis, error) {
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	if m.analysis == nil {
		return &domain.Analysis{Ingredients: []domain.ClassifiedIngredient{}}, nil
	}
	return m.analysis, nil
}

func (m *mockAnalysisService) DatasetStats() domain.DatasetStats {
	return domain.DatasetStats{Source: "mock"}
}

// mockScanService is a mock implementation of driving.ScanService.
type mockScanService struct {
	records []domain.ScanRecord
	err     error
}

func (m *mockScanService) Capture(_ context.Context, _ string, _ []byte) (*domain.ScanRecord, error) {
	return nil, m.err
}

func (m *mockScanService) List(_ context.Context) ([]domain.ScanRecord, error) {
	return m.records, m.err
}

func (m *mockScanService) Get(_ context.Context, id string) (*domain.ScanRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockScanService) Delete(_ context.Context, _ ...string) error {
	return m.err
}

func (m *mockScanService) Image(_ context.Context, _ string) ([]byte, error) {
	return nil, m.err
}

func (m *mockScanService) Move(_ context.Context, _, _ int) error {
	return m.err
}

func strPtr(s string) *string { return &s }

// sampleScans returns three scans, oldest first.
func sampleScans() []domain.ScanRecord {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return []domain.ScanRecord{
		{
			ID:             "scan-1",
			Timestamp:      base,
			RecognizedText: "Water, Red 40",
			Ingredients: []domain.ClassifiedIngredient{
				{ID: "i1", Name: "Water", Safety: domain.SafetySafe, MatchedWith: strPtr("Water")},
				{ID: "i2", Name: "Red 40", Safety: domain.SafetyHarmful, MatchedWith: strPtr("Red 40")},
			},
		},
		{
			ID:        "scan-2",
			Timestamp: base.Add(time.Hour),
			Ingredients: []domain.ClassifiedIngredient{
				{ID: "i3", Name: "Mystery", Safety: domain.SafetyUnknown},
			},
		},
		{
			ID:          "scan-3",
			Timestamp:   base.Add(2 * time.Hour),
			Ingredients: []domain.ClassifiedIngredient{},
		},
	}
}
