package importer

import (
	"context"
	"strings"
	"testing"

	"shophub/internal/domain"
)

type captureRepo struct {
	products []domain.Product
	err      error
}

func (c *captureRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.products = append(c.products, p)
	return &p, nil
}

func TestRunImportsProductsWithCentPrices(t *testing.T) {
	input := `[
  {"id": "p1", "name": "Wireless Headphones", "description": "ANC over-ear", "price": 199.99, "category": "Electronics", "image": "https://img/h.jpg", "rating": 4.5},
  {"id": "p2", "name": "Smart Watch", "price": 249.9, "category": "Electronics", "rating": 4.2}
]`
	repo := &captureRepo{}
	imp := NewJSONImporter(strings.NewReader(input), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 2 || len(repo.products) != 2 {
		t.Fatalf("expected 2 imports, got %d", count)
	}
	if repo.products[0].PriceCents != 19999 {
		t.Fatalf("expected 19999 cents, got %d", repo.products[0].PriceCents)
	}
	if repo.products[1].PriceCents != 24990 {
		t.Fatalf("expected 24990 cents, got %d", repo.products[1].PriceCents)
	}
}

func TestRunSkipsNamelessRows(t *testing.T) {
	input := `[{"id": "x", "price": 1.00, "category": "Misc"}, {"id": "p1", "name": "Mug", "price": 12.99, "category": "Home"}]`
	repo := &captureRepo{}
	imp := NewJSONImporter(strings.NewReader(input), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 1 || repo.products[0].Name != "Mug" {
		t.Fatalf("unexpected imports %+v", repo.products)
	}
}

func TestRunRejectsNegativePriceAndMissingCategory(t *testing.T) {
	for _, input := range []string{
		`[{"id": "p1", "name": "Mug", "price": -1, "category": "Home"}]`,
		`[{"id": "p1", "name": "Mug", "price": 1}]`,
	} {
		imp := NewJSONImporter(strings.NewReader(input), &captureRepo{})
		if _, err := imp.Run(context.Background()); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}

func TestRunMalformedInput(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader(`{"not":"an array"`), &captureRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
