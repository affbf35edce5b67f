package domain

// ReferenceDataset holds the three curated canonical ingredient lists.
// Order within each list is significant: matching is first-match-wins.
// A dataset is loaded once and never mutated afterwards.
type ReferenceDataset struct {
	SafeIngredients      []string
	ConditionallyAllowed []string
	HarmfulIngredients   []string
}

// IsEmpty reports whether every list is empty.
// A nil dataset is empty.
func (d *ReferenceDataset) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.SafeIngredients) == 0 &&
		len(d.ConditionallyAllowed) == 0 &&
		len(d.HarmfulIngredients) == 0
}

// Size returns the total number of canonical entries.
func (d *ReferenceDataset) Size() int {
	if d == nil {
		return 0
	}
	return len(d.SafeIngredients) + len(d.ConditionallyAllowed) + len(d.HarmfulIngredients)
}

// DatasetStats summarises a loaded dataset for display.
type DatasetStats struct {
	// Source describes where the dataset came from (file path or "bundled").
	Source string

	Safe        int
	Conditional int
	Harmful     int
}
