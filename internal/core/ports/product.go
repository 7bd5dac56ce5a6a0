package ports

import (
	"context"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalogue.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// ProductService defines use-case operations for products.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
