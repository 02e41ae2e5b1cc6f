package order

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/invoice"
	"fashion-storefront/internal/logging"
	"go.uber.org/zap"
)

// ErrInvalidTransition rejects a status change outside the order lifecycle.
var ErrInvalidTransition = errors.New("invalid order status transition")

var next = map[domain.OrderStatus]domain.OrderStatus{
	domain.OrderPending:    domain.OrderProcessing,
	domain.OrderProcessing: domain.OrderShipped,
	domain.OrderShipped:    domain.OrderDelivered,
}

// CanTransition reports whether from may move to to. Orders advance one step
// at a time; any order not yet delivered or cancelled may be cancelled.
func CanTransition(from, to domain.OrderStatus) bool {
	if to == domain.OrderCancelled {
		return from != domain.OrderDelivered && from != domain.OrderCancelled
	}
	return next[from] == to
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, payment domain.PaymentStatus) (*domain.Order, error)
}

type notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, title, message, link string)
}

type Service struct {
	repo   orderRepo
	notify notifier
	seller invoice.Seller
	logger *zap.Logger
}

func New(repo orderRepo, notify notifier, seller invoice.Seller, logger *zap.Logger) *Service {
	return &Service{repo: repo, notify: notify, seller: seller, logger: logging.OrNop(logger)}
}

func (s *Service) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" && !known(status) {
		return nil, domain.Invalid("status", "unknown status "+string(status))
	}
	return s.repo.List(ctx, status)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForUser hides orders owned by someone else as not found.
func (s *Service) GetForUser(ctx context.Context, userID, id string) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// UpdateStatus moves the order along its lifecycle and posts an order
// notification.
func (s *Service) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	if !known(to) {
		return nil, domain.Invalid("status", "unknown status "+string(to))
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	updated, err := s.repo.UpdateStatus(ctx, id, to, current.PaymentStatus)
	if err != nil {
		return nil, err
	}
	s.logger.Info("orders: status changed", zap.String("order_id", id),
		zap.String("from", string(current.Status)), zap.String("to", string(to)))
	s.notify.Notify(ctx, domain.NotifyOrder, "Order "+string(to),
		fmt.Sprintf("Order %s is now %s", id, to), "/orders/"+id)
	return updated, nil
}

// Invoice renders the order as a PDF into w.
func (s *Service) Invoice(ctx context.Context, id string, w io.Writer) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return invoice.Render(w, s.seller, *o)
}

func known(st domain.OrderStatus) bool {
	switch st {
	case domain.OrderPending, domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered, domain.OrderCancelled:
		return true
	}
	return false
}
