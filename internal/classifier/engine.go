package classifier

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// Engine classifies raw ingredient text against a reference dataset.
// It is safe for concurrent use because the dataset is never mutated.
type Engine struct {
	dataset *domain.ReferenceDataset
	newID   func() string
}

// NewEngine creates an engine over the given dataset.
// A nil or empty dataset makes Analyze return no ingredients.
func NewEngine(dataset *domain.ReferenceDataset) *Engine {
	return &Engine{
		dataset: dataset,
		newID:   uuid.NewString,
	}
}

// Dataset returns the reference dataset the engine matches against.
func (e *Engine) Dataset() *domain.ReferenceDataset {
	return e.dataset
}

// Analyze runs CleanText, Split, Normalize and Classify over raw text and
// returns one classified ingredient per extracted phrase, in source order.
func (e *Engine) Analyze(raw string) []domain.ClassifiedIngredient {
	if e.dataset.IsEmpty() {
		logger.Debug("No ingredient data available, skipping analysis")
		return []domain.ClassifiedIngredient{}
	}

	phrases := Split(CleanText(raw))
	logger.Debug("Extracted %d ingredients from text", len(phrases))

	ingredients := make([]domain.ClassifiedIngredient, 0, len(phrases))
	for _, phrase := range phrases {
		safety, matched := Classify(Normalize(phrase), e.dataset)
		ingredients = append(ingredients, domain.ClassifiedIngredient{
			ID:          e.newID(),
			Name:        phrase,
			Safety:      safety,
			MatchedWith: matched,
		})
	}

	logger.Debug("Analysis complete - %d ingredients analyzed", len(ingredients))
	return ingredients
}
