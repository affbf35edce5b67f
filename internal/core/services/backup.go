package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
	"github.com/custodia-labs/ingrecheck/internal/logger"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// BackupPrefix is the top-level key prefix for uploaded backups.
const BackupPrefix = "ingrecheck"

// BackupService copies the scan collection and its images to an object store.
// Each run writes under a fresh timestamped prefix; earlier backups are kept.
type BackupService struct {
	store  driven.ScanStore
	target driven.BackupTarget
	now    func() time.Time
}

// NewBackupService creates a backup service. target may be nil when no
// backup bucket is configured; Backup then reports domain.ErrBackupUnavailable.
func NewBackupService(store driven.ScanStore, target driven.BackupTarget) *BackupService {
	return &BackupService{
		store:  store,
		target: target,
		now:    time.Now,
	}
}

// Backup uploads the collection and every image it references.
func (s *BackupService) Backup(ctx context.Context) (*driving.BackupReport, error) {
	if s.target == nil {
		return nil, domain.ErrBackupUnavailable
	}

	files, ok := s.store.(driven.ScanStoreFiles)
	if !ok {
		return nil, fmt.Errorf("%w: store has no local files to back up", domain.ErrNotImplemented)
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	if err := files.Checkpoint(ctx); err != nil {
		return nil, err
	}

	report := &driving.BackupReport{
		Location: s.target.Location(),
		Prefix:   path.Join(BackupPrefix, s.now().UTC().Format("20060102T150405Z")),
	}
	logger.Section("Backup")

	collectionPath := files.CollectionPath()
	if _, err := os.Stat(collectionPath); errors.Is(err, os.ErrNotExist) {
		// Nothing saved yet; write the empty collection so the backup is complete.
		if err := s.store.Persist(ctx); err != nil {
			return nil, fmt.Errorf("persist scans: %w", err)
		}
	}
	key := path.Join(report.Prefix, filepath.Base(collectionPath))
	if err := s.upload(ctx, report, key, collectionPath, collectionContentType(collectionPath)); err != nil {
		return nil, err
	}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		localPath, err := files.ImagePath(r.ImageRef)
		if err != nil {
			logger.Warn("scan %s: image reference %q rejected, skipped", r.ID, r.ImageRef)
			report.Missing = append(report.Missing, r.ImageRef)
			continue
		}
		key := path.Join(report.Prefix, "images", r.ImageRef)
		err = s.upload(ctx, report, key, localPath, "image/jpeg")
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("scan %s: image %s missing, skipped", r.ID, r.ImageRef)
			report.Missing = append(report.Missing, r.ImageRef)
			continue
		}
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (s *BackupService) upload(ctx context.Context, report *driving.BackupReport, key, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", localPath, err)
	}

	if err := s.target.Upload(ctx, key, f, info.Size(), contentType); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	report.Objects++
	report.Bytes += info.Size()
	logger.Info("uploaded %s (%d bytes)", key, info.Size())
	return nil
}

func collectionContentType(p string) string {
	if filepath.Ext(p) == ".json" {
		return "application/json"
	}
	return "application/vnd.sqlite3"
}
