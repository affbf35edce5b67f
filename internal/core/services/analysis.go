package services

import (
	"context"

	"github.com/custodia-labs/ingrecheck/internal/classifier"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService classifies ingredient text against the loaded dataset.
type AnalysisService struct {
	engine *classifier.Engine
	source string
}

// NewAnalysisService creates an analysis service. source names where the
// engine's dataset came from and is only used for display.
func NewAnalysisService(engine *classifier.Engine, source string) *AnalysisService {
	return &AnalysisService{
		engine: engine,
		source: source,
	}
}

// Analyze classifies raw text and tallies the tiers.
func (s *AnalysisService) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ingredients := s.engine.Analyze(text)
	counts := domain.CountTiers(ingredients)
	logger.Debug("analysis: %d safe, %d caution, %d harmful, %d unknown",
		counts.Safe, counts.Conditional, counts.Harmful, counts.Unknown)

	return &domain.Analysis{
		Ingredients: ingredients,
		Counts:      counts,
	}, nil
}

// DatasetStats describes the loaded reference dataset.
func (s *AnalysisService) DatasetStats() domain.DatasetStats {
	stats := domain.DatasetStats{Source: s.source}
	if ds := s.engine.Dataset(); ds != nil {
		stats.Safe = len(ds.SafeIngredients)
		stats.Conditional = len(ds.ConditionallyAllowed)
		stats.Harmful = len(ds.HarmfulIngredients)
	}
	return stats
}
