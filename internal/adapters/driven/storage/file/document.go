package file

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// scanDocument is the persisted form of a scan record.
type scanDocument struct {
	ID                  string               `json:"id"`
	Date                time.Time            `json:"date"`
	RecognizedText      string               `json:"recognized_text"`
	AnalyzedIngredients []ingredientDocument `json:"analyzed_ingredients"`
	ImageFileName       string               `json:"image_file_name"`
}

// ingredientDocument is the persisted form of a classified ingredient.
type ingredientDocument struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Safety      string  `json:"safety"`
	MatchedWith *string `json:"matched_with,omitempty"`
}

func encodeCollection(records []domain.ScanRecord) ([]byte, error) {
	docs := make([]scanDocument, len(records))
	for i, r := range records {
		ingredients := make([]ingredientDocument, len(r.Ingredients))
		for j, ing := range r.Ingredients {
			ingredients[j] = ingredientDocument{
				ID:          ing.ID,
				Name:        ing.Name,
				Safety:      ing.Safety.String(),
				MatchedWith: ing.MatchedWith,
			}
		}
		docs[i] = scanDocument{
			ID:                  r.ID,
			Date:                r.Timestamp.UTC(),
			RecognizedText:      r.RecognizedText,
			AnalyzedIngredients: ingredients,
			ImageFileName:       r.ImageRef,
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding scans: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeCollection(data []byte) ([]domain.ScanRecord, error) {
	var docs []scanDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCollection, err)
	}

	records := make([]domain.ScanRecord, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", domain.ErrCorruptCollection, i)
		}

		ingredients := make([]domain.ClassifiedIngredient, len(d.AnalyzedIngredients))
		for j, ing := range d.AnalyzedIngredients {
			ingredients[j] = domain.ClassifiedIngredient{
				ID:          ing.ID,
				Name:        ing.Name,
				Safety:      domain.ParseSafety(ing.Safety),
				MatchedWith: ing.MatchedWith,
			}
		}

		records[i] = domain.ScanRecord{
			ID:             d.ID,
			Timestamp:      d.Date,
			RecognizedText: d.RecognizedText,
			Ingredients:    ingredients,
			ImageRef:       d.ImageFileName,
		}
	}
	return records, nil
}
