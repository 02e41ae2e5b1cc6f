package contact

import (
	"context"
	"net/mail"
	"strings"

	"fashion-storefront/internal/domain"
	contactrepo "fashion-storefront/internal/repository/contact"
)

type Service struct {
	repo contactrepo.Repository
}

func New(repo contactrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit records a message from the public contact form.
func (s *Service) Submit(ctx context.Context, in Input) (*domain.Contact, error) {
	c := domain.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Status:  domain.ContactNew,
	}
	if c.Name == "" {
		return nil, domain.Invalid("name", "required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return nil, domain.Invalid("email", "must be a valid address")
	}
	if c.Message == "" {
		return nil, domain.Invalid("message", "required")
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	switch status {
	case domain.ContactNew, domain.ContactRead, domain.ContactResolved:
	default:
		return domain.Invalid("status", "must be new, read or resolved")
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
