package notification

import (
	"context"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	notificationrepo "fashion-storefront/internal/repository/notification"
	"go.uber.org/zap"
)

type Service struct {
	repo   notificationrepo.Repository
	logger *zap.Logger
}

func New(repo notificationrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger)}
}

// Notify appends a feed entry as a side effect of another write. It is not
// transactional with that write; a failure is logged and swallowed.
func (s *Service) Notify(ctx context.Context, typ domain.NotificationType, title, message, link string) {
	n, err := s.repo.Create(ctx, domain.Notification{Type: typ, Title: title, Message: message, Link: link})
	if err != nil {
		s.logger.Error("notifications: write failed", zap.String("type", string(typ)), zap.String("title", title), zap.Error(err))
		return
	}
	s.logger.Debug("notifications: created", zap.String("id", n.ID), zap.String("type", string(typ)))
}

func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	return s.repo.List(ctx)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
