// Package product is the admin side of the catalogue.
package product

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	productrepo "fashion-storefront/internal/repository/product"
	"fashion-storefront/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, title, message, link string)
}

type Service struct {
	repo   productrepo.Repository
	files  storage.Storage
	notify notifier
	now    func() time.Time
	logger *zap.Logger
}

func New(repo productrepo.Repository, files storage.Storage, notify notifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, files: files, notify: notify, now: time.Now, logger: logging.OrNop(logger)}
}

// Input is the editable part of a product.
type Input struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Material    string          `json:"material"`
	Tags        []string        `json:"tags"`
	Sizes       []string        `json:"sizes"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Offer       *domain.Offer   `json:"offer"`
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a product and posts a product notification, plus an offer
// notification when it launches with an active offer.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("products: created", zap.String("product_id", created.ID), zap.String("title", created.Title))
	s.notify.Notify(ctx, domain.NotifyProduct, "New arrival", created.Title+" is now available", "/products/"+created.ID)
	if created.Offer.Active() {
		s.notifyOffer(ctx, created)
	}
	return created, nil
}

// Update replaces a product. Enabling or changing its offer posts an offer
// notification.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.Popularity = current.Popularity
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated.Offer.Active() && offerChanged(current.Offer, updated.Offer) {
		s.notifyOffer(ctx, updated)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// UploadImage stores a product photo and returns its URL.
func (s *Service) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.files.Put(ctx, storage.ProductImagePath(filename, s.now()), r)
}

func (s *Service) notifyOffer(ctx context.Context, p *domain.Product) {
	title := p.Offer.Title
	if title == "" {
		title = "New offer"
	}
	s.notify.Notify(ctx, domain.NotifyOffer, title,
		fmt.Sprintf("%s now at %s (%d%% off)", p.Title, p.OfferPrice().StringFixed(2), p.DiscountPercent()), "/products/"+p.ID)
}

func offerChanged(before, after *domain.Offer) bool {
	if !before.Active() {
		return true
	}
	return before.Type != after.Type || !before.Value.Equal(after.Value) || before.Title != after.Title
}

func (in Input) toProduct() (domain.Product, error) {
	p := domain.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Brand:       strings.TrimSpace(in.Brand),
		Material:    strings.TrimSpace(in.Material),
		Tags:        compact(in.Tags),
		Sizes:       compact(in.Sizes),
		Images:      compact(in.Images),
		Price:       in.Price,
		Stock:       in.Stock,
		Offer:       in.Offer,
	}
	if p.Title == "" {
		return p, domain.Invalid("title", "required")
	}
	if p.Category == "" {
		return p, domain.Invalid("category", "required")
	}
	if !p.Price.IsPositive() {
		return p, domain.Invalid("price", "must be positive")
	}
	if p.Stock < 0 {
		return p, domain.Invalid("stock", "must not be negative")
	}
	if o := p.Offer; o != nil {
		switch o.Type {
		case domain.OfferPercentage:
			if o.Value.GreaterThan(decimal.NewFromInt(100)) {
				return p, domain.Invalid("offer.value", "percentage must not exceed 100")
			}
		case domain.OfferFixed:
			if o.Value.GreaterThan(p.Price) {
				return p, domain.Invalid("offer.value", "fixed offer must not exceed price")
			}
		default:
			return p, domain.Invalid("offer.type", "must be percentage or fixed")
		}
		if o.Value.IsNegative() {
			return p, domain.Invalid("offer.value", "must not be negative")
		}
	}
	return p, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
