// Package catalog filters, sorts and searches a snapshot of the product
// collection.
package catalog

import (
	"context"
	"sort"
	"strings"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SearchLimit caps type-ahead results.
const SearchLimit = 8

type Sort string

const (
	SortDefault    Sort = ""
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortNewest     Sort = "newest"
	SortPopularity Sort = "popularity"
)

// Filter narrows a listing. Zero values match everything; price bounds are
// inclusive and compare against the offer price.
type Filter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Size     string
	Query    string
	Sort     Sort
}

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo productLister
}

func New(repo productLister) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List loads the collection once and applies f in memory.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	switch f.Sort {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNewest, SortPopularity:
	default:
		return nil, domain.Invalid("sort", "unknown sort "+string(f.Sort))
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(all, f), nil
}

// Search returns at most SearchLimit products whose text fields contain q.
func (s *Service) Search(ctx context.Context, q string) ([]domain.Product, error) {
	if strings.TrimSpace(q) == "" {
		return []domain.Product{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := Apply(all, Filter{Query: q})
	if len(out) > SearchLimit {
		out = out[:SearchLimit]
	}
	return out, nil
}

// Apply filters and sorts products without touching the input slice.
func Apply(products []domain.Product, f Filter) []domain.Product {
	category := strings.ToLower(strings.TrimSpace(f.Category))
	size := strings.ToLower(strings.TrimSpace(f.Size))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		price := p.OfferPrice()
		if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if size != "" && !containsFold(p.Sizes, size) {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OfferPrice().LessThan(out[j].OfferPrice()) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OfferPrice().GreaterThan(out[j].OfferPrice()) })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}
	return out
}

func matches(p domain.Product, query string) bool {
	fields := []string{p.Title, p.Category, p.Brand, p.Material}
	fields = append(fields, p.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.ToLower(strings.TrimSpace(v)) == want {
			return true
		}
	}
	return false
}
