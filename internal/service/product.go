package service

import (
	"context"

	"github.com/shopleaf/storefront/internal/domain"
	"github.com/shopleaf/storefront/internal/repository"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
	"github.com/shopleaf/storefront/pkg/pagination"
)

// ProductService implements catalog reads.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// GetProduct retrieves a single product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.products.GetByID(ctx, id)
}

// ListProducts returns catalog products, optionally filtered by category.
func (s *ProductService) ListProducts(ctx context.Context, category string, params pagination.Params) ([]domain.Product, int, error) {
	filter := repository.ProductFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if category != "" {
		filter.Category = &category
	}
	return s.products.List(ctx, filter)
}
