package banner

import (
	"context"
	"io"
	"strings"
	"testing"

	"fashion-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	banner *domain.Banner
}

func (r *stubRepo) GetBanner(context.Context) (*domain.Banner, error) {
	if r.banner == nil {
		return nil, domain.ErrNotFound
	}
	return r.banner, nil
}

func (r *stubRepo) PutBanner(_ context.Context, b domain.Banner) (*domain.Banner, error) {
	r.banner = &b
	return &b, nil
}

type stubFiles struct{ paths []string }

func (f *stubFiles) Put(_ context.Context, objectPath string, _ io.Reader) (string, error) {
	f.paths = append(f.paths, objectPath)
	return "/files/" + objectPath, nil
}

func (f *stubFiles) Delete(context.Context, string) error { return nil }

func TestGet_EmptyWhenUnset(t *testing.T) {
	svc := New(&stubRepo{}, &stubFiles{})
	b, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, b.Slides)
}

func TestPut_RequiresImage(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubFiles{})

	_, err := svc.Put(context.Background(), []domain.BannerSlide{{Title: "Sale"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Put(context.Background(), []domain.BannerSlide{{ImageURL: " /files/a.jpg ", Title: "Sale"}})
	require.NoError(t, err)
	assert.Equal(t, "/files/a.jpg", repo.banner.Slides[0].ImageURL)
}

func TestUploadSlide_Path(t *testing.T) {
	files := &stubFiles{}
	_, err := New(&stubRepo{}, files).UploadSlide(context.Background(), "hero.jpg", nil)
	require.NoError(t, err)
	require.Len(t, files.paths, 1)
	assert.True(t, strings.HasPrefix(files.paths[0], "home_banners/"))
	assert.True(t, strings.HasSuffix(files.paths[0], "-hero.jpg"))
}
