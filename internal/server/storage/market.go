package storage

import (
	"context"

	"github.com/iudanet/niplan/internal/models"
)

// BusinessStorage defines interface for business persistence
type BusinessStorage interface {
	// GetBusinessByOwner returns the business of a user
	// Returns ErrBusinessNotFound if it doesn't exist
	GetBusinessByOwner(ctx context.Context, ownerID string) (*models.Business, error)

	// GetBusinessBySlug returns a business by its public slug
	// Returns ErrBusinessNotFound if it doesn't exist
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)

	// UpdateBusiness saves name, description, logo and type
	// Returns ErrBusinessNotFound if it doesn't exist
	UpdateBusiness(ctx context.Context, business *models.Business) error
}

// ProductStorage defines interface for product persistence
type ProductStorage interface {
	// CreateProduct stores a new product
	// Returns ErrSlugTaken on slug collision
	CreateProduct(ctx context.Context, product *models.Product) error

	// GetProduct returns a product of the business by slug
	// Returns ErrProductNotFound if it doesn't exist
	GetProduct(ctx context.Context, businessID, slug string) (*models.Product, error)

	// UpdateProduct saves all editable fields
	// Returns ErrProductNotFound if it doesn't exist
	UpdateProduct(ctx context.Context, product *models.Product) error

	// DeleteProduct removes a product of the business
	// Returns ErrProductNotFound if it doesn't exist
	DeleteProduct(ctx context.Context, businessID, slug string) error

	// ListBusinessProducts returns products of one business, newest first
	ListBusinessProducts(ctx context.Context, businessID string) ([]*models.Product, error)

	// ListProducts returns the public catalog, newest first
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
}
