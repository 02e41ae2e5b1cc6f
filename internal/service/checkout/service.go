// Package checkout prices a purchase and records it as an order once the
// simulated payment succeeds.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	"fashion-storefront/internal/pricing"
	pendingrepo "fashion-storefront/internal/repository/pending"
	cartsvc "fashion-storefront/internal/service/cart"
	"go.uber.org/zap"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// BuyNow is a single product bought directly, bypassing the cart.
type BuyNow struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type QuoteInput struct {
	BuyNow    *BuyNow `json:"buyNow,omitempty"`
	PromoCode string  `json:"promoCode,omitempty"`
}

type PayInput struct {
	Address   domain.Address `json:"address"`
	PromoCode string         `json:"promoCode,omitempty"`
	BuyNow    *BuyNow        `json:"buyNow,omitempty"`
}

type cartAccess interface {
	Get(ctx context.Context, sess cartsvc.Session) ([]domain.CartLine, error)
	Clear(ctx context.Context, sess cartsvc.Session) ([]domain.CartLine, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	IncrementPopularity(ctx context.Context, id string, by int) error
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, title, message, link string)
}

type Service struct {
	carts    cartAccess
	products productRepo
	orders   orderRepo
	pending  pendingrepo.Repository
	notify   notifier
	rules    pricing.ShippingRules
	logger   *zap.Logger
}

func New(carts cartAccess, products productRepo, orders orderRepo, pending pendingrepo.Repository, notify notifier, rules pricing.ShippingRules, logger *zap.Logger) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orders,
		pending:  pending,
		notify:   notify,
		rules:    rules,
		logger:   logging.OrNop(logger),
	}
}

// Quote prices the cart, or the buy-now item when given. An unknown promo code
// yields the no-promo quote together with pricing.ErrInvalidPromo.
func (s *Service) Quote(ctx context.Context, sess cartsvc.Session, in QuoteInput) (pricing.Summary, error) {
	lines, err := s.lines(ctx, sess, in.BuyNow)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Apply(lines, in.PromoCode, s.rules)
}

// SavePending stores the buy-now selection for the guest until sign-in.
func (s *Service) SavePending(ctx context.Context, guestID string, item BuyNow) error {
	if guestID == "" {
		return domain.Invalid("guestId", "required")
	}
	if err := validateBuyNow(&item); err != nil {
		return err
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.pending.Put(ctx, guestID, raw)
}

// TakePending returns and forgets the saved buy-now selection.
func (s *Service) TakePending(ctx context.Context, guestID string) (*BuyNow, error) {
	if guestID == "" {
		return nil, domain.ErrNotFound
	}
	raw, err := s.pending.Take(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domain.ErrNotFound
	}
	var item BuyNow
	if err := json.Unmarshal(raw, &item); err != nil {
		s.logger.Warn("checkout: discard unparsable pending purchase", zap.String("guest_id", guestID), zap.Error(err))
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// Pay simulates a successful payment and records the order. The cart is
// cleared only when the order came from it.
func (s *Service) Pay(ctx context.Context, sess cartsvc.Session, in PayInput) (*domain.Order, error) {
	if sess.UserID == "" {
		return nil, domain.ErrForbidden
	}
	addr, err := normalizeAddress(in.Address)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines(ctx, sess, in.BuyNow)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("items", "cart is empty")
	}
	sum, err := pricing.Apply(lines, in.PromoCode, s.rules)
	if err != nil {
		return nil, domain.Invalid("promoCode", err.Error())
	}

	order := domain.Order{
		UserID:          sess.UserID,
		Items:           lines,
		Subtotal:        sum.Subtotal,
		Discount:        sum.PromoDiscount,
		OfferDiscount:   sum.OfferDiscount,
		Shipping:        sum.Shipping,
		Total:           sum.Total,
		DeliveryAddress: addr,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentPaid,
	}
	if sum.Promo != nil {
		order.PromoCode = sum.Promo.Code
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("checkout: order placed", zap.String("order_id", created.ID), zap.String("user_id", sess.UserID),
		zap.String("total", created.Total.StringFixed(2)), zap.Bool("buy_now", in.BuyNow != nil))

	s.notify.Notify(ctx, domain.NotifyOrder, "Order placed",
		fmt.Sprintf("Order %s for %s has been placed", created.ID, created.Total.StringFixed(2)), "/orders/"+created.ID)

	for _, line := range lines {
		if err := s.products.IncrementPopularity(ctx, line.ID, line.Quantity); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("checkout: popularity update failed", zap.String("product_id", line.ID), zap.Error(err))
		}
	}
	if in.BuyNow == nil {
		if _, err := s.carts.Clear(ctx, sess); err != nil {
			s.logger.Warn("checkout: clear cart", zap.String("user_id", sess.UserID), zap.Error(err))
		}
	}
	return created, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) lines(ctx context.Context, sess cartsvc.Session, buyNow *BuyNow) ([]domain.CartLine, error) {
	if buyNow == nil {
		return s.carts.Get(ctx, sess)
	}
	if err := validateBuyNow(buyNow); err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, buyNow.ProductID)
	if err != nil {
		return nil, err
	}
	line := domain.LineFromProduct(*p)
	line.Quantity = buyNow.Quantity
	return []domain.CartLine{line}, nil
}

func validateBuyNow(b *BuyNow) error {
	b.ProductID = strings.TrimSpace(b.ProductID)
	if b.ProductID == "" {
		return domain.Invalid("buyNow.productId", "required")
	}
	if b.Quantity == 0 {
		b.Quantity = 1
	}
	if b.Quantity < 0 {
		return domain.Invalid("buyNow.quantity", "must be positive")
	}
	return nil
}

func normalizeAddress(a domain.Address) (domain.Address, error) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Line1 = strings.TrimSpace(a.Line1)
	a.Line2 = strings.TrimSpace(a.Line2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Pincode = strings.TrimSpace(a.Pincode)

	required := []struct{ field, value string }{
		{"address.fullName", a.FullName},
		{"address.phone", a.Phone},
		{"address.line1", a.Line1},
		{"address.city", a.City},
		{"address.state", a.State},
		{"address.pincode", a.Pincode},
	}
	for _, r := range required {
		if r.value == "" {
			return a, domain.Invalid(r.field, "required")
		}
	}
	if !pincodePattern.MatchString(a.Pincode) {
		return a, domain.Invalid("address.pincode", "must be 6 digits")
	}
	return a, nil
}
