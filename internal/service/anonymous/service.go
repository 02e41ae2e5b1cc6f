// Package anonymous hands out guest ids. A guest id names the guest cart and
// any pending buy-now selection until the visitor signs in.
package anonymous

import (
	"strings"

	"fashion-storefront/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	newID func() uuid.UUID
}

func New() *Service {
	return &Service{newID: uuid.New}
}

func (s *Service) Issue() string {
	return s.newID().String()
}

// Parse accepts a client-supplied guest id. An empty value means no guest.
func (s *Service) Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.Invalid("X-Guest-ID", "must be a UUID")
	}
	return id.String(), nil
}
