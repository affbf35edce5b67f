package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

func TestNewScanStore(t *testing.T) {
	store := NewScanStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.images)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScanStore_AddListGet(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "a", Timestamp: time.Now()}))
	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "b", Timestamp: time.Now()}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = store.Get(ctx, "c")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanStore_AddRejectsMissingID(t *testing.T) {
	err := NewScanStore().Add(context.Background(), domain.ScanRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScanStore_AddRejectsDuplicates(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()

	ref, err := store.SaveImage(ctx, []byte("img"))
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "a", ImageRef: ref}))
	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "b"}))

	assert.ErrorIs(t, store.Add(ctx, domain.ScanRecord{ID: "a"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Add(ctx, domain.ScanRecord{ID: "c", ImageRef: ref}), domain.ErrInvalidInput)

	records, _ := store.List(ctx)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestScanStore_DeleteDropsImages(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()

	ref, err := store.SaveImage(ctx, []byte("img"))
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "a", ImageRef: ref}))
	require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: "b"}))

	require.NoError(t, store.Delete(ctx, []string{"a"}))

	records, _ := store.List(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ID)

	_, err = store.LoadImage(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanStore_Move(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Add(ctx, domain.ScanRecord{ID: id}))
	}

	require.NoError(t, store.Move(ctx, 2, 0))
	records, _ := store.List(ctx)
	assert.Equal(t, "c", records[0].ID)

	assert.ErrorIs(t, store.Move(ctx, 3, 0), domain.ErrInvalidInput)
}

func TestScanStore_ImagesAreCopied(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()

	blob := []byte("abc")
	ref, err := store.SaveImage(ctx, blob)
	require.NoError(t, err)
	blob[0] = 'z'

	got, err := store.LoadImage(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = store.SaveImage(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScanStore_Concurrency(t *testing.T) {
	store := NewScanStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref, err := store.SaveImage(ctx, []byte{byte(i)})
			assert.NoError(t, err)
			assert.NoError(t, store.Add(ctx, domain.ScanRecord{ID: ref, ImageRef: ref}))
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	records, _ := store.List(ctx)
	assert.Len(t, records, 50)
}
