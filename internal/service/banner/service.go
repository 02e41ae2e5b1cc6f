package banner

import (
	"context"
	"errors"
	"io"
	"strings"

	"fashion-storefront/internal/domain"
	settingsrepo "fashion-storefront/internal/repository/settings"
	"fashion-storefront/internal/storage"
	"github.com/google/uuid"
)

type Service struct {
	repo  settingsrepo.Repository
	files storage.Storage
}

func New(repo settingsrepo.Repository, files storage.Storage) *Service {
	return &Service{repo: repo, files: files}
}

// Get returns the home banner; an unset banner has no slides.
func (s *Service) Get(ctx context.Context) (*domain.Banner, error) {
	b, err := s.repo.GetBanner(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Banner{Slides: []domain.BannerSlide{}}, nil
	}
	return b, err
}

func (s *Service) Put(ctx context.Context, slides []domain.BannerSlide) (*domain.Banner, error) {
	for i := range slides {
		slides[i].ImageURL = strings.TrimSpace(slides[i].ImageURL)
		if slides[i].ImageURL == "" {
			return nil, domain.Invalid("slides.imageUrl", "required")
		}
	}
	return s.repo.PutBanner(ctx, domain.Banner{Slides: slides})
}

// UploadSlide stores a slide image under a fresh slide id and returns its URL.
func (s *Service) UploadSlide(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.files.Put(ctx, storage.BannerPath(uuid.NewString(), filename), r)
}
