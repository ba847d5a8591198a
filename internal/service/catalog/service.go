package catalog

import (
	"context"

	"shophub/internal/domain"
	productrepo "shophub/internal/repository/product"
)

type Service struct {
	repo productRepo
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog filtered and sorted for display.
func (s *Service) List(ctx context.Context, f FilterState, sortOption string) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := Filter(products, f)
	SortProducts(filtered, sortOption)
	return filtered, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the category labels with the "All" sentinel prepended.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{CategoryAll}, cats...), nil
}
