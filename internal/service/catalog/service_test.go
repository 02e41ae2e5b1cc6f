package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	products []domain.Product
}

func (r *stubRepo) List(context.Context) ([]domain.Product, error) { return r.products, nil }

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func fixture() []domain.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "1", Title: "Floral Maxi Dress", Category: "Dresses", Brand: "Aura", Material: "Cotton", Sizes: []string{"S", "M"}, Price: decimal.NewFromInt(1800), Popularity: 5, CreatedAt: base},
		{ID: "2", Title: "Silk Kurta", Category: "Ethnic", Brand: "Noor", Material: "Silk", Tags: []string{"festive"}, Sizes: []string{"M", "L"}, Price: decimal.NewFromInt(2500),
			Offer: &domain.Offer{Enabled: true, Type: domain.OfferFixed, Value: decimal.NewFromInt(1000)}, Popularity: 9, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Denim Jacket", Category: "Outerwear", Brand: "Aura", Material: "Denim", Sizes: []string{"L"}, Price: decimal.NewFromInt(1200), Popularity: 1, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func productIDs(ps []domain.Product) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_Filters(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want []string
	}{
		{"category is case-insensitive", Filter{Category: "dresses"}, []string{"1"}},
		{"price bracket uses offer price", Filter{MinPrice: dec(1400), MaxPrice: dec(1600)}, []string{"2"}},
		{"size", Filter{Size: "l"}, []string{"2", "3"}},
		{"query over brand", Filter{Query: "aura"}, []string{"1", "3"}},
		{"query over tags", Filter{Query: "FEST"}, []string{"2"}},
		{"query over material", Filter{Query: "denim"}, []string{"3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, productIDs(Apply(fixture(), tc.f)))
		})
	}
}

func TestApply_Sorts(t *testing.T) {
	assert.Equal(t, []string{"3", "2", "1"}, productIDs(Apply(fixture(), Filter{Sort: SortPriceAsc})))
	assert.Equal(t, []string{"1", "2", "3"}, productIDs(Apply(fixture(), Filter{Sort: SortPriceDesc})))
	assert.Equal(t, []string{"3", "2", "1"}, productIDs(Apply(fixture(), Filter{Sort: SortNewest})))
	assert.Equal(t, []string{"2", "1", "3"}, productIDs(Apply(fixture(), Filter{Sort: SortPopularity})))
}

func TestService_SearchCapsResults(t *testing.T) {
	var products []domain.Product
	for i := 0; i < 12; i++ {
		products = append(products, domain.Product{ID: fmt.Sprint(i), Title: fmt.Sprintf("Summer Top %d", i), Price: decimal.NewFromInt(500)})
	}
	svc := New(&stubRepo{products: products})

	got, err := svc.Search(context.Background(), "summer")
	require.NoError(t, err)
	assert.Len(t, got, SearchLimit)

	empty, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestService_ListRejectsUnknownSort(t *testing.T) {
	svc := New(&stubRepo{products: fixture()})
	_, err := svc.List(context.Background(), Filter{Sort: "cheapest"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
