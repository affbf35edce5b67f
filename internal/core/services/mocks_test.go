package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/ingrecheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ingrecheck/internal/classifier"
	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// testDataset is a small reference dataset shared by the service tests.
func testDataset() *domain.ReferenceDataset {
	return &domain.ReferenceDataset{
		SafeIngredients:      []string{"Water", "Salt", "Citric Acid"},
		ConditionallyAllowed: []string{"Palm Oil"},
		HarmfulIngredients:   []string{"Red 40"},
	}
}

func newTestAnalysis() *AnalysisService {
	return NewAnalysisService(classifier.NewEngine(testDataset()), "test")
}

// failingStore wraps the memory store and fails selected operations.
type failingStore struct {
	*memory.ScanStore
	addErr       error
	saveImageErr error
	deleteErr    error
	removed      []string
}

func newFailingStore() *failingStore {
	return &failingStore{ScanStore: memory.NewScanStore()}
}

func (s *failingStore) Add(ctx context.Context, r domain.ScanRecord) error {
	if s.addErr != nil {
		return s.addErr
	}
	return s.ScanStore.Add(ctx, r)
}

func (s *failingStore) SaveImage(ctx context.Context, blob []byte) (string, error) {
	if s.saveImageErr != nil {
		return "", s.saveImageErr
	}
	return s.ScanStore.SaveImage(ctx, blob)
}

func (s *failingStore) Delete(ctx context.Context, ids []string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.ScanStore.Delete(ctx, ids)
}

func (s *failingStore) RemoveImage(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return s.ScanStore.RemoveImage(ctx, ref)
}

// uploadedObject records one call to mockTarget.Upload.
type uploadedObject struct {
	Key         string
	Body        []byte
	Size        int64
	ContentType string
}

// mockTarget implements driven.BackupTarget in memory.
type mockTarget struct {
	mu        sync.Mutex
	objects   []uploadedObject
	uploadErr error
}

func (m *mockTarget) Upload(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = append(m.objects, uploadedObject{Key: key, Body: body, Size: size, ContentType: contentType})
	return nil
}

func (m *mockTarget) Location() string {
	return "mock://bucket"
}

func (m *mockTarget) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.objects))
	for i, o := range m.objects {
		out[i] = o.Key
	}
	return out
}
