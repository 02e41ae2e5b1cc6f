// Package importer loads catalogue CSV files into the product table.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const listSep = ";"

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalogue rows and upserts products keyed by title and
// brand. A row with no title but an image adds that image to the previous
// product.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	logger   *zap.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVImporter{reader: csvr, products: repo, logger: logger}
}

// Run imports every product in the file and reports how many were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["title"]; !ok {
		return 0, errors.New("read headers: title column missing")
	}

	var (
		current  *domain.Product
		line     = 1
		imported int
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		title := pick(record, index, "title")
		image := pick(record, index, "image")
		if title == "" {
			if current != nil && image != "" {
				current.Images = append(current.Images, image)
			}
			continue
		}

		if current != nil {
			if err := i.save(ctx, current); err != nil {
				return imported, err
			}
			imported++
		}
		current, err = parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if p.Category == "" || !p.Price.IsPositive() {
		return fmt.Errorf("invalid product %q: category and a positive price are required", p.Title)
	}
	out, err := i.products.Upsert(ctx, *p)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Title, err)
	}
	i.logger.Debug("importer: product saved", zap.String("id", out.ID), zap.String("title", out.Title))
	return nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	p := &domain.Product{
		Title:       pick(record, index, "title"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		Brand:       pick(record, index, "brand"),
		Material:    pick(record, index, "material"),
		Sizes:       splitList(pick(record, index, "sizes")),
		Tags:        splitList(pick(record, index, "tags")),
	}
	if img := pick(record, index, "image"); img != "" {
		p.Images = []string{img}
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("price for %q: %w", p.Title, err)
	}
	p.Price = price

	if raw := pick(record, index, "stock"); raw != "" {
		if p.Stock, err = strconv.Atoi(raw); err != nil || p.Stock < 0 {
			return nil, fmt.Errorf("stock for %q: must be a non-negative integer", p.Title)
		}
	}

	if typ := pick(record, index, "offer_type"); typ != "" {
		value, err := decimal.NewFromString(pick(record, index, "offer_value"))
		if err != nil {
			return nil, fmt.Errorf("offer value for %q: %w", p.Title, err)
		}
		p.Offer = &domain.Offer{
			Enabled: true,
			Type:    domain.OfferType(strings.ToLower(typ)),
			Value:   value,
			Title:   pick(record, index, "offer_title"),
		}
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, listSep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
