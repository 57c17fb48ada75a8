package cli

import (
	"context"
	"net/url"

	"github.com/iudanet/niplan/pkg/api"
)

//go:generate moq -out market_mock.go . Market

// Market операции API маркетплейса, используемые командами (*api.Client удовлетворяет интерфейсу)
type Market interface {
	GetMyBusiness(ctx context.Context) (*api.Business, error)
	UpdateMyBusiness(ctx context.Context, req api.BusinessUpdateRequest) (*api.Business, error)
	ListMyProducts(ctx context.Context) ([]api.Product, error)
	CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error)
	EditProduct(ctx context.Context, slug string, req api.ProductRequest) (*api.Product, error)
	DeleteProduct(ctx context.Context, slug string) error
	ListProducts(ctx context.Context, query url.Values) ([]api.Product, error)
	GetBusiness(ctx context.Context, slug string) (*api.Business, error)
	AdminUsers(ctx context.Context) ([]api.AdminUser, error)
	AdminOTPs(ctx context.Context) ([]api.AdminOTP, error)
}
