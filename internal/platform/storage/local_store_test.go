package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/platform/storage"
)

func newTestStore(t *testing.T) *storage.LocalFileStore {
	t.Helper()
	store, err := storage.NewLocalFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPutAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	data := []byte("archive contents")

	require.NoError(t, store.Put(ctx, "tenant-1/period-1/pack-1.zip", data))

	got, err := store.Get(ctx, "tenant-1/period-1/pack-1.zip")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestPutRefusesOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tenant-1/pack.zip", []byte("original")))

	err := store.Put(ctx, "tenant-1/pack.zip", []byte("replacement"))
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	got, err := store.Get(ctx, "tenant-1/pack.zip")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "tenant-1/missing.zip")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"../outside.zip", "/etc/passwd", ".", "a/../../outside.zip"} {
		err := store.Put(ctx, key, []byte("x"))
		assert.ErrorIs(t, err, apperrors.ErrValidation, "key %q", key)

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "key %q", key)
	}
}
