package cart

import (
	"context"
	"strings"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	"fashion-storefront/internal/pricing"
	cartrepo "fashion-storefront/internal/repository/cart"
	"go.uber.org/zap"
)

// Session identifies whose cart a request addresses. GuestID comes from the
// client; UserID is set once the request carries a valid bearer token.
type Session struct {
	GuestID string
	UserID  string
}

type productReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	carts    cartrepo.Repository
	guests   cartrepo.GuestRepository
	broker   cartrepo.Broker
	products productReader
	rules    pricing.ShippingRules
	logger   *zap.Logger
}

func New(carts cartrepo.Repository, guests cartrepo.GuestRepository, broker cartrepo.Broker, products productReader, rules pricing.ShippingRules, logger *zap.Logger) *Service {
	return &Service{
		carts:    carts,
		guests:   guests,
		broker:   broker,
		products: products,
		rules:    rules,
		logger:   logging.OrNop(logger),
	}
}

// Engine returns an engine already observing the session's auth state.
func (s *Service) Engine(ctx context.Context, sess Session) (*Engine, error) {
	if sess.GuestID == "" && sess.UserID == "" {
		return nil, domain.Invalid("guestId", "guest id or sign-in required")
	}
	local := NewLocalStore(s.guests, sess.GuestID, s.logger)
	remote := func(uid string) Store { return NewRemoteStore(s.carts, s.broker, uid) }
	var sub Subscriber
	if s.broker != nil {
		sub = s.broker
	}
	e := NewEngine(local, remote, sub, s.logger)
	if sess.UserID != "" {
		e.Observe(ctx, SignedIn(sess.UserID))
	} else {
		e.Observe(ctx, SignedOut())
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, sess Session) ([]domain.CartLine, error) {
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.Items(), nil
}

// Add snapshots the catalogue product into a line and adds it.
func (s *Service) Add(ctx context.Context, sess Session, productID string) ([]domain.CartLine, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("productId", "required")
	}
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return e.Add(ctx, domain.LineFromProduct(*p)), nil
}

func (s *Service) Remove(ctx context.Context, sess Session, productID string) ([]domain.CartLine, error) {
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.Remove(ctx, productID), nil
}

func (s *Service) SetQuantity(ctx context.Context, sess Session, productID string, n int) ([]domain.CartLine, error) {
	if n < 0 {
		return nil, domain.Invalid("quantity", "must not be negative")
	}
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.SetQuantity(ctx, productID, n), nil
}

func (s *Service) Increment(ctx context.Context, sess Session, productID string) ([]domain.CartLine, error) {
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.Increment(ctx, productID), nil
}

func (s *Service) Decrement(ctx context.Context, sess Session, productID string) ([]domain.CartLine, error) {
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.Decrement(ctx, productID), nil
}

func (s *Service) Clear(ctx context.Context, sess Session) ([]domain.CartLine, error) {
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, err
	}
	return e.Clear(ctx), nil
}

// Summary prices the session's cart. An unknown promo code returns the
// no-promo summary with pricing.ErrInvalidPromo.
func (s *Service) Summary(ctx context.Context, sess Session, promoCode string) (pricing.Summary, error) {
	items, err := s.Get(ctx, sess)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Apply(items, promoCode, s.rules)
}

// Watch streams the signed-in user's cart as other sessions rewrite it.
func (s *Service) Watch(ctx context.Context, sess Session) (<-chan []domain.CartLine, func(), error) {
	if sess.UserID == "" {
		return nil, nil, ErrSignedOut
	}
	e, err := s.Engine(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	return e.Live(ctx)
}
