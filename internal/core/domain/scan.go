package domain

import "time"

// ScanRecord is a completed capture-classify-save cycle.
// A record exclusively owns the image blob named by ImageRef.
type ScanRecord struct {
	// ID is the unique identifier for the scan.
	ID string

	// Timestamp is when the scan was saved.
	Timestamp time.Time

	// RecognizedText is the raw OCR text supplied by the capture pipeline.
	RecognizedText string

	// Ingredients are the classified ingredients in extraction order.
	Ingredients []ClassifiedIngredient

	// ImageRef is the file name of the stored image blob.
	ImageRef string
}

// Counts returns the per-tier counts for the record's ingredients.
func (r *ScanRecord) Counts() TierCounts {
	return CountTiers(r.Ingredients)
}
