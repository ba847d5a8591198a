package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"shophub/internal/domain"
	"shophub/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_UpsertListGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Upsert(ctx, domain.Product{
		ID:          "p1",
		Name:        "Wireless Headphones",
		Description: "Over-ear, noise cancelling",
		PriceCents:  19999,
		Category:    "Electronics",
		Image:       "https://img.example/headphones.jpg",
		Rating:      4.5,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID != "p1" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected upsert result %+v", created)
	}

	// upsert with the same id updates in place
	if _, err := repo.Upsert(ctx, domain.Product{ID: "p1", Name: "Wireless Headphones", PriceCents: 17999, Category: "Electronics", Rating: 4.5}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PriceCents != 17999 {
		t.Fatalf("expected updated price, got %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
}

func TestPostgres_GetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_ListCategories(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	for _, p := range []domain.Product{
		{ID: "p1", Name: "Headphones", PriceCents: 100, Category: "Electronics"},
		{ID: "p2", Name: "Watch", PriceCents: 200, Category: "Electronics"},
		{ID: "p3", Name: "Backpack", PriceCents: 300, Category: "Accessories"},
	} {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert %s: %v", p.ID, err)
		}
	}

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "Accessories" || cats[1] != "Electronics" {
		t.Fatalf("unexpected categories %v", cats)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate products: %v", err)
	}
}
