package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
	"github.com/custodia-labs/ingrecheck/internal/core/ports/driving"
)

var _ driving.ScanService = (*mockScanService)(nil)

type capture struct {
	text  string
	image []byte
}

type mockScanService struct {
	mu       sync.Mutex
	captures []capture
	err      error
}

func (m *mockScanService) Capture(_ context.Context, text string, image []byte) (*domain.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.captures = append(m.captures, capture{text: text, image: image})
	return &domain.ScanRecord{ID: fmt.Sprintf("scan-%d", len(m.captures)), RecognizedText: text}, nil
}

func (m *mockScanService) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.captures)
}

func (m *mockScanService) List(context.Context) ([]domain.ScanRecord, error) { return nil, nil }
func (m *mockScanService) Get(context.Context, string) (*domain.ScanRecord, error) { return nil, nil }
func (m *mockScanService) Delete(context.Context, ...string) error { return nil }
func (m *mockScanService) Image(context.Context, string) ([]byte, error) { return nil, nil }
func (m *mockScanService) Move(context.Context, int, int) error { return nil }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		event     string
		operation fsnotify.Op
		captured  bool
	}{
		{
			name:      "text created with jpg sibling",
			files:     map[string]string{"a.txt": "water, sugar", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Create,
			captured:  true,
		},
		{
			name:      "text written with png sibling",
			files:     map[string]string{"a.txt": "water", "a.png": "img"},
			event:     "a.txt",
			operation: fsnotify.Write,
			captured:  true,
		},
		{
			name:      "jpeg sibling",
			files:     map[string]string{"a.txt": "water", "a.jpeg": "img"},
			event:     "a.txt",
			operation: fsnotify.Create,
			captured:  true,
		},
		{
			name:      "image arrives after text",
			files:     map[string]string{"a.txt": "water", "a.jpg": "img"},
			event:     "a.jpg",
			operation: fsnotify.Create,
			captured:  true,
		},
		{
			name:      "text without image",
			files:     map[string]string{"a.txt": "water"},
			event:     "a.txt",
			operation: fsnotify.Create,
		},
		{
			name:      "image without text",
			files:     map[string]string{"a.jpg": "img"},
			event:     "a.jpg",
			operation: fsnotify.Create,
		},
		{
			name:      "empty image still being written",
			files:     map[string]string{"a.txt": "water", "a.jpg": ""},
			event:     "a.txt",
			operation: fsnotify.Create,
		},
		{
			name:      "empty text still being written",
			files:     map[string]string{"a.txt": "", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Create,
		},
		{
			name:      "blank text still being written",
			files:     map[string]string{"a.txt": " \n", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Write,
		},
		{
			name:      "image landing beside empty text",
			files:     map[string]string{"a.txt": "", "a.jpg": "img"},
			event:     "a.jpg",
			operation: fsnotify.Create,
		},
		{
			name:      "remove ignored",
			files:     map[string]string{"a.txt": "water", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Remove,
		},
		{
			name:      "rename ignored",
			files:     map[string]string{"a.txt": "water", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Rename,
		},
		{
			name:      "chmod ignored",
			files:     map[string]string{"a.txt": "water", "a.jpg": "img"},
			event:     "a.txt",
			operation: fsnotify.Chmod,
		},
		{
			name:      "hidden file skipped",
			files:     map[string]string{".a.txt": "water", ".a.jpg": "img"},
			event:     ".a.txt",
			operation: fsnotify.Create,
		},
		{
			name:      "unrelated extension",
			files:     map[string]string{"a.txt": "water", "a.jpg": "img", "a.pdf": "doc"},
			event:     "a.pdf",
			operation: fsnotify.Create,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			scans := &mockScanService{}
			w := New(dir, scans)

			event := fsnotify.Event{Name: filepath.Join(dir, tt.event), Op: tt.operation}
			captured, err := w.handleEvent(context.Background(), event)

			require.NoError(t, err)
			assert.Equal(t, tt.captured, captured)
			if tt.captured {
				require.Equal(t, 1, scans.count())
				assert.Equal(t, []byte("img"), scans.captures[0].image)
			} else {
				assert.Zero(t, scans.count())
			}
		})
	}
}

func TestHandleEvent_PairCapturedOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), "img")
	writeFile(t, filepath.Join(dir, "a.txt"), "water")
	scans := &mockScanService{}
	w := New(dir, scans)
	ctx := context.Background()

	for _, op := range []fsnotify.Op{fsnotify.Create, fsnotify.Write, fsnotify.Write} {
		_, err := w.handleEvent(ctx, fsnotify.Event{Name: filepath.Join(dir, "a.txt"), Op: op})
		require.NoError(t, err)
	}
	_, err := w.handleEvent(ctx, fsnotify.Event{Name: filepath.Join(dir, "a.jpg"), Op: fsnotify.Write})
	require.NoError(t, err)

	assert.Equal(t, 1, scans.count())
	assert.Equal(t, "water", scans.captures[0].text)
}

func TestHandleEvent_TextFilledAfterCreate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), "img")
	textPath := filepath.Join(dir, "a.txt")
	writeFile(t, textPath, "")
	scans := &mockScanService{}
	w := New(dir, scans)
	ctx := context.Background()

	captured, err := w.handleEvent(ctx, fsnotify.Event{Name: textPath, Op: fsnotify.Create})
	require.NoError(t, err)
	assert.False(t, captured)

	writeFile(t, textPath, "water, sugar")
	captured, err = w.handleEvent(ctx, fsnotify.Event{Name: textPath, Op: fsnotify.Write})
	require.NoError(t, err)
	assert.True(t, captured)

	require.Equal(t, 1, scans.count())
	assert.Equal(t, "water, sugar", scans.captures[0].text)
}

func TestHandleEvent_TextRenamedIntoPlace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), "img")
	staging := filepath.Join(dir, ".a.txt")
	writeFile(t, staging, "water")
	scans := &mockScanService{}
	w := New(dir, scans)
	ctx := context.Background()

	captured, err := w.handleEvent(ctx, fsnotify.Event{Name: staging, Op: fsnotify.Write})
	require.NoError(t, err)
	assert.False(t, captured)

	final := filepath.Join(dir, "a.txt")
	require.NoError(t, os.Rename(staging, final))
	_, err = w.handleEvent(ctx, fsnotify.Event{Name: staging, Op: fsnotify.Rename})
	require.NoError(t, err)
	captured, err = w.handleEvent(ctx, fsnotify.Event{Name: final, Op: fsnotify.Create})
	require.NoError(t, err)
	assert.True(t, captured)

	require.Equal(t, 1, scans.count())
	assert.Equal(t, "water", scans.captures[0].text)
}

func TestHandleEvent_CaptureFailureRetried(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), "img")
	writeFile(t, filepath.Join(dir, "a.txt"), "water")
	scans := &mockScanService{err: domain.ErrBlobWrite}
	w := New(dir, scans)
	event := fsnotify.Event{Name: filepath.Join(dir, "a.txt"), Op: fsnotify.Write}

	_, err := w.handleEvent(context.Background(), event)
	assert.True(t, errors.Is(err, domain.ErrBlobWrite))

	scans.err = nil
	captured, err := w.handleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, captured)
}

func TestHandleEvent_OnCapture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "label.png"), "img")
	writeFile(t, filepath.Join(dir, "label.txt"), "water")
	w := New(dir, &mockScanService{})

	var names []string
	w.OnCapture = func(name string, record *domain.ScanRecord) {
		names = append(names, name+"="+record.ID)
	}

	_, err := w.handleEvent(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "label.txt"), Op: fsnotify.Create})
	require.NoError(t, err)
	assert.Equal(t, []string{"label=scan-1"}, names)
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "second")
	writeFile(t, filepath.Join(dir, "b.jpg"), "img")
	writeFile(t, filepath.Join(dir, "a.txt"), "first")
	writeFile(t, filepath.Join(dir, "a.png"), "img")
	writeFile(t, filepath.Join(dir, "c.txt"), "no image")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.txt"), 0700))

	scans := &mockScanService{}
	w := New(dir, scans)

	n, err := w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Equal(t, 2, scans.count())
	assert.Equal(t, "first", scans.captures[0].text)
	assert.Equal(t, "second", scans.captures[1].text)

	n, err = w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweep_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &mockScanService{})

	_, err := w.Sweep(context.Background())
	assert.Error(t, err)
}

func TestRun_CapturesNewPairs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "existing.txt"), "water")
	writeFile(t, filepath.Join(dir, "existing.jpg"), "img")

	scans := &mockScanService{}
	w := New(dir, scans)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return scans.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	writeFile(t, filepath.Join(dir, "new.jpg"), "img")
	writeFile(t, filepath.Join(dir, "new.txt"), "sugar")

	assert.Eventually(t, func() bool { return scans.count() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &mockScanService{})

	err := w.Run(context.Background())
	assert.Error(t, err)
}
