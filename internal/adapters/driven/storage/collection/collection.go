// Package collection holds the ordered-list operations shared by the scan store backends.
//
// Functions never modify their input slice; each returns a new slice so a
// backend can keep the previous collection around for rollback.
package collection

import (
	"fmt"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// Append returns records with record added at the end.
func Append(records []domain.ScanRecord, record domain.ScanRecord) []domain.ScanRecord {
	out := make([]domain.ScanRecord, 0, len(records)+1)
	out = append(out, records...)
	return append(out, record)
}

// CheckAdd reports whether record may join records: it needs an ID that is not
// taken, and a non-empty ImageRef must not belong to another record.
func CheckAdd(records []domain.ScanRecord, record domain.ScanRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: scan without id", domain.ErrInvalidInput)
	}
	for i := range records {
		if records[i].ID == record.ID {
			return fmt.Errorf("%w: scan %s already exists", domain.ErrInvalidInput, record.ID)
		}
		if record.ImageRef != "" && records[i].ImageRef == record.ImageRef {
			return fmt.Errorf("%w: image %s already belongs to scan %s",
				domain.ErrInvalidInput, record.ImageRef, records[i].ID)
		}
	}
	return nil
}

// Remove drops every record whose ID is in ids, preserving the order of the rest.
// It also returns the removed records so their blobs can be cleaned up.
func Remove(records []domain.ScanRecord, ids []string) (kept, removed []domain.ScanRecord) {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	kept = make([]domain.ScanRecord, 0, len(records))
	for _, r := range records {
		if _, ok := targets[r.ID]; ok {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}

// Move returns records with the element at from relocated to index to.
func Move(records []domain.ScanRecord, from, to int) ([]domain.ScanRecord, error) {
	n := len(records)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d to %d in collection of %d", domain.ErrInvalidInput, from, to, n)
	}

	out := make([]domain.ScanRecord, 0, n)
	out = append(out, records[:from]...)
	out = append(out, records[from+1:]...)

	moved := records[from]
	out = append(out, domain.ScanRecord{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Find returns a copy of the record with the given ID.
func Find(records []domain.ScanRecord, id string) (*domain.ScanRecord, error) {
	for i := range records {
		if records[i].ID == id {
			r := records[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("scan %s: %w", id, domain.ErrNotFound)
}

// Clone returns a shallow copy of records that callers may reorder freely.
func Clone(records []domain.ScanRecord) []domain.ScanRecord {
	out := make([]domain.ScanRecord, len(records))
	copy(out, records)
	return out
}
