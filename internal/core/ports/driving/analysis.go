package driving

import (
	"context"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// AnalysisService classifies recognised ingredient text.
type AnalysisService interface {
	// Analyze classifies raw OCR text. Empty text yields an empty analysis.
	Analyze(ctx context.Context, text string) (*domain.Analysis, error)

	// DatasetStats describes the loaded reference dataset.
	DatasetStats() domain.DatasetStats
}
