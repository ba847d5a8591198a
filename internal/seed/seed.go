package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Image       string
	Rating      float64
}

// Apply inserts basic catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:          "p1",
			Name:        "Wireless Headphones",
			Description: "Over-ear headphones with active noise cancelling",
			PriceCents:  19999,
			Category:    "Electronics",
			Image:       "https://images.example.com/headphones.jpg",
			Rating:      4.5,
		},
		{
			ID:          "p2",
			Name:        "Smart Watch",
			Description: "Fitness tracking with a week of battery",
			PriceCents:  24999,
			Category:    "Electronics",
			Image:       "https://images.example.com/watch.jpg",
			Rating:      4.2,
		},
		{
			ID:          "p3",
			Name:        "Leather Backpack",
			Description: "Full-grain leather, fits a 15 inch laptop",
			PriceCents:  8999,
			Category:    "Accessories",
			Image:       "https://images.example.com/backpack.jpg",
			Rating:      4.8,
		},
		{
			ID:          "p4",
			Name:        "Ceramic Pour-Over Set",
			Description: "Dripper and carafe for slow mornings",
			PriceCents:  4599,
			Category:    "Home",
			Image:       "https://images.example.com/pourover.jpg",
			Rating:      4.6,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price_cents, category, image, rating)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    image = EXCLUDED.image,
    rating = EXCLUDED.rating
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Category, p.Image, p.Rating)
	return err
}
