package profile

import (
	"context"
	"io"
	"net/mail"
	"strings"

	"fashion-storefront/internal/domain"
	userrepo "fashion-storefront/internal/repository/user"
	"fashion-storefront/internal/storage"
)

type Service struct {
	users userrepo.Repository
	files storage.Storage
}

func New(users userrepo.Repository, files storage.Storage) *Service {
	return &Service{users: users, files: files}
}

type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, in Input) (*domain.User, error) {
	u := domain.User{ID: userID, Name: strings.TrimSpace(in.Name), Email: strings.TrimSpace(in.Email)}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return nil, domain.Invalid("email", "must be a valid address")
		}
	}
	return s.users.UpdateProfile(ctx, u)
}

// UploadPhoto replaces the user's profile photo and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, userID string, r io.Reader) (string, error) {
	url, err := s.files.Put(ctx, storage.ProfilePath(userID), r)
	if err != nil {
		return "", err
	}
	if err := s.users.SetPhotoURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
