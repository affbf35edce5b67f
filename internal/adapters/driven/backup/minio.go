// Package backup uploads scan backups to an S3-compatible object store.
package backup

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driven"
)

// Ensure Target implements the interface.
var _ driven.BackupTarget = (*Target)(nil)

// objectClient is the subset of *minio.Client the target uses.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Target writes objects into one bucket. The bucket is created on first upload
// if it does not exist.
type Target struct {
	client   objectClient
	endpoint string
	bucket   string
	region   string

	mu          sync.Mutex
	bucketReady bool
}

// NewTarget creates a target from backup settings. No network call is made
// until the first upload.
func NewTarget(settings domain.BackupSettings) (*Target, error) {
	if !settings.IsConfigured() {
		return nil, domain.ErrBackupUnavailable
	}

	cli, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
		Region: settings.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	return newTarget(cli, settings), nil
}

func newTarget(client objectClient, settings domain.BackupSettings) *Target {
	return &Target{
		client:   client,
		endpoint: settings.Endpoint,
		bucket:   settings.Bucket,
		region:   settings.Region,
	}
}

// Upload stores size bytes from r under key.
func (t *Target) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := t.ensureBucket(ctx); err != nil {
		return err
	}

	_, err := t.client.PutObject(ctx, t.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}
	return nil
}

// Location describes the target for display.
func (t *Target) Location() string {
	return fmt.Sprintf("%s/%s", t.endpoint, t.bucket)
}

func (t *Target) ensureBucket(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bucketReady {
		return nil
	}

	exists, err := t.client.BucketExists(ctx, t.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", t.bucket, err)
	}
	if !exists {
		if err := t.client.MakeBucket(ctx, t.bucket, minio.MakeBucketOptions{Region: t.region}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", t.bucket, err)
		}
	}

	t.bucketReady = true
	return nil
}
