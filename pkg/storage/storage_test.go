package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	d := NewLocal(t.TempDir(), "http://localhost:5000/storage/")

	require.NoError(t, d.Put(ctx, "artworks/a.jpg", strings.NewReader("jpeg"), "image/jpeg"))
	assert.True(t, d.Exists(ctx, "artworks/a.jpg"))

	rc, err := d.Get(ctx, "artworks/a.jpg")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg", string(body))

	assert.Equal(t, "http://localhost:5000/storage/artworks/a.jpg", d.URL("artworks/a.jpg"))

	require.NoError(t, d.Delete(ctx, "artworks/a.jpg"))
	assert.False(t, d.Exists(ctx, "artworks/a.jpg"))
	assert.NoError(t, d.Delete(ctx, "artworks/a.jpg"), "deleting a missing file is not an error")
}

func TestLocalDiskRejectsTraversal(t *testing.T) {
	d := NewLocal(t.TempDir(), "")
	err := d.Put(context.Background(), "../escape.txt", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestManagerRegisterAndDefault(t *testing.T) {
	d := NewLocal(t.TempDir(), "")
	RegisterDisk("test", d)
	SetDefault("test")
	t.Cleanup(func() { SetDefault("local") })

	got, err := Use("test")
	require.NoError(t, err)
	assert.Same(t, d, got)
	assert.Same(t, d, Default())

	_, err = Use("nope")
	assert.Error(t, err)
}
