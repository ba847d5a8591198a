package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"shophub/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a catalog export (an array of products with decimal
// prices in currency units) and inserts/updates products.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

type jsonProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
}

// Run parses the catalog file and upserts every product. Prices are converted
// to integer cents.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var rows []jsonProduct
	if err := json.NewDecoder(i.reader).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	imported := 0
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if row.Price.IsNegative() {
			return imported, fmt.Errorf("product %q: negative price %s", row.Name, row.Price)
		}
		if row.Category == "" {
			return imported, fmt.Errorf("product %q: category required", row.Name)
		}
		p := domain.Product{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			PriceCents:  row.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
			Category:    row.Category,
			Image:       row.Image,
			Rating:      row.Rating,
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert %q: %w", row.Name, err)
		}
		imported++
	}

	return imported, nil
}
