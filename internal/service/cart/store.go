package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	cartrepo "fashion-storefront/internal/repository/cart"
	"go.uber.org/zap"
)

// Store is one cart holder.
type Store interface {
	// Load returns the stored lines and whether the holder had a cart at all.
	Load(ctx context.Context) ([]domain.CartLine, bool, error)
	// Save replaces the whole line array.
	Save(ctx context.Context, items []domain.CartLine) error
}

// LocalHolder is the guest-side store, which can also be emptied after a
// migration to the remote holder.
type LocalHolder interface {
	Store
	Clear(ctx context.Context) error
}

// LocalStore keeps a guest cart as a JSON array under the guest id.
type LocalStore struct {
	repo    cartrepo.GuestRepository
	guestID string
	logger  *zap.Logger
}

func NewLocalStore(repo cartrepo.GuestRepository, guestID string, logger *zap.Logger) *LocalStore {
	return &LocalStore{repo: repo, guestID: guestID, logger: logging.OrNop(logger)}
}

// Load treats a missing key and an undecodable payload alike: an empty cart.
func (s *LocalStore) Load(ctx context.Context) ([]domain.CartLine, bool, error) {
	if s.guestID == "" {
		return []domain.CartLine{}, false, nil
	}
	raw, err := s.repo.Get(ctx, s.guestID)
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return []domain.CartLine{}, false, nil
	}
	items := []domain.CartLine{}
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Debug("local cart: discard unparsable payload", zap.String("guest_id", s.guestID), zap.Error(err))
		return []domain.CartLine{}, false, nil
	}
	return items, true, nil
}

func (s *LocalStore) Save(ctx context.Context, items []domain.CartLine) error {
	if s.guestID == "" {
		return nil
	}
	if items == nil {
		items = []domain.CartLine{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode guest cart: %w", err)
	}
	return s.repo.Put(ctx, s.guestID, raw)
}

func (s *LocalStore) Clear(ctx context.Context) error {
	if s.guestID == "" {
		return nil
	}
	return s.repo.Delete(ctx, s.guestID)
}

// RemoteStore is the per-user cart row. Every save rewrites the full array
// and announces it to live subscribers.
type RemoteStore struct {
	repo   cartrepo.Repository
	broker cartrepo.Broker
	userID string
}

func NewRemoteStore(repo cartrepo.Repository, broker cartrepo.Broker, userID string) *RemoteStore {
	return &RemoteStore{repo: repo, broker: broker, userID: userID}
}

func (s *RemoteStore) Load(ctx context.Context) ([]domain.CartLine, bool, error) {
	items, err := s.repo.Get(ctx, s.userID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.CartLine{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (s *RemoteStore) Save(ctx context.Context, items []domain.CartLine) error {
	if err := s.repo.Put(ctx, s.userID, items); err != nil {
		return err
	}
	if s.broker == nil {
		return nil
	}
	if err := s.broker.Publish(ctx, s.userID, items); err != nil {
		return fmt.Errorf("publish cart: %w", err)
	}
	return nil
}
