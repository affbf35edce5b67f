package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
)

func TestBackupCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "backup")

	assert.ErrorIs(t, err, domain.ErrBackupUnavailable)
	assert.Contains(t, err.Error(), "ingrecheck settings backup")
}

func TestBackupCmd_Report(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	backupService = &mockBackupService{report: &driving.BackupReport{
		Location: "minio:9000/scans",
		Prefix:   "ingrecheck/20260101T120000Z",
		Objects:  3,
		Bytes:    1024,
		Missing:  []string{"gone.jpg"},
	}}

	out, err := execute("", "backup")

	require.NoError(t, err)
	assert.Contains(t, out, "Backed up to minio:9000/scans/ingrecheck/20260101T120000Z")
	assert.Contains(t, out, "Objects: 3")
	assert.Contains(t, out, "Bytes:   1024")
	assert.Contains(t, out, "1 photo(s) were missing")
	assert.Contains(t, out, "gone.jpg")
}

func TestBackupCmd_Failure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	backupService = &mockBackupService{err: errors.New("connection refused")}

	_, err := execute("", "backup")

	assert.EqualError(t, err, "backup failed: connection refused")
}
