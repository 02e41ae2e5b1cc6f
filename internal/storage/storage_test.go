package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fashion-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newMemBucket(t *testing.T) *Bucket {
	t.Helper()
	b := NewBucket(memblob.OpenBucket(nil), "http://localhost:8080/")
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBucket_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	b := newMemBucket(t)

	url, err := b.Put(ctx, "products/1_dress.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/products/1_dress.jpg", url)

	obj, err := b.Open(ctx, "products/1_dress.jpg")
	require.NoError(t, err)
	raw, err := io.ReadAll(obj)
	require.NoError(t, obj.Close())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(raw))
	assert.Equal(t, int64(4), obj.Size)
	assert.True(t, strings.HasPrefix(obj.ContentType, "text/plain"), obj.ContentType)

	require.NoError(t, b.Delete(ctx, "products/1_dress.jpg"))
	assert.ErrorIs(t, b.Delete(ctx, "products/1_dress.jpg"), domain.ErrNotFound)
	_, err = b.Open(ctx, "products/1_dress.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBucket_DoubleDotInFileNameAccepted(t *testing.T) {
	ctx := context.Background()
	b := newMemBucket(t)

	objectPath := ProductImagePath("summer..dress.jpg", time.Unix(1700000000, 0))
	url, err := b.Put(ctx, objectPath, strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/products/1700000000_summer..dress.jpg", url)

	_, err = b.Put(ctx, "blog/..hidden/v1..final.png", strings.NewReader("img"))
	require.NoError(t, err)
}

func TestBucket_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	b := newMemBucket(t)

	for _, p := range []string{"../etc/passwd", "products/../../x", "  ", "/"} {
		_, err := b.Put(ctx, p, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrValidation, p)
	}
}

func TestOpen_LocalDirectoryBucket(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")

	b, err := Open(ctx, "", dir, "http://cdn.example.com")
	require.NoError(t, err)
	defer b.Close()

	url, err := b.Put(ctx, "profileImages/u1", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.com/files/profileImages/u1", url)

	raw, err := os.ReadFile(filepath.Join(dir, "profileImages", "u1"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(raw))
}

func TestObjectPaths(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "products/1700000000_summer_dress.jpg", ProductImagePath("summer dress.jpg", now))
	assert.Equal(t, "home_banners/s1-hero.png", BannerPath("s1", "C:\\Users\\me\\hero.png"))
	assert.Equal(t, "blog/featureImages/1700000000_a.png", BlogFeaturePath("a.png", now))
	assert.Equal(t, "blog/contentImages/1700000000_b.png", BlogContentPath("../../b.png", now))
	assert.Equal(t, "profileImages/u1", ProfilePath("u1"))
	assert.Equal(t, "file", SafeName(""))
}
