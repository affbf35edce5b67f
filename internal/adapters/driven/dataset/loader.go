package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// BundledSource is reported by Source when no override path is set.
const BundledSource = "bundled"

//go:embed ingredients_data.json
var bundled []byte

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// document is the on-disk schema.
type document struct {
	SafeIngredients      []string `json:"safe_ingredients"`
	ConditionallyAllowed []string `json:"conditionally_allowed"`
	HarmfulIngredients   []string `json:"harmful_ingredients"`
}

// Loader reads the dataset from a file or from the bundled resource.
type Loader struct {
	path string
}

// NewLoader creates a loader. An empty path selects the bundled dataset.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Source returns the override path or BundledSource.
func (l *Loader) Source() string {
	if l.path == "" {
		return BundledSource
	}
	return l.path
}

// Load reads and decodes the dataset. The returned dataset is never nil.
func (l *Loader) Load(_ context.Context) (*domain.ReferenceDataset, error) {
	data := bundled
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Could not find ingredient dataset at %s, classifying everything as Unknown", l.path)
				return &domain.ReferenceDataset{}, nil
			}
			return &domain.ReferenceDataset{}, fmt.Errorf("reading %s: %w: %w", l.path, domain.ErrCorruptDataset, err)
		}
		data = raw
	}

	ds, err := Decode(data)
	if err != nil {
		return &domain.ReferenceDataset{}, fmt.Errorf("decoding %s: %w", l.Source(), err)
	}

	logger.Info("Loaded %d safe ingredients", len(ds.SafeIngredients))
	logger.Info("Loaded %d conditional ingredients", len(ds.ConditionallyAllowed))
	logger.Info("Loaded %d harmful ingredients", len(ds.HarmfulIngredients))
	return ds, nil
}

// Decode parses a dataset document. Missing lists decode as empty.
func Decode(data []byte) (*domain.ReferenceDataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptDataset, err)
	}

	return &domain.ReferenceDataset{
		SafeIngredients:      nonNil(doc.SafeIngredients),
		ConditionallyAllowed: nonNil(doc.ConditionallyAllowed),
		HarmfulIngredients:   nonNil(doc.HarmfulIngredients),
	}, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
