package handlers

import (
	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/pkg/api"
)

func toAPIProduct(p *models.Product) api.Product {
	return api.Product{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Location:     p.Location,
		ExchangeFor:  p.ExchangeFor,
		Currency:     p.Currency,
		Image:        p.Image,
		BusinessName: p.BusinessName,
		BusinessSlug: p.BusinessSlug,
		VendeurPhone: p.OwnerPhone,
		Price:        p.Price,
		IsAvailable:  p.IsAvailable,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toAPIProducts(products []*models.Product) []api.Product {
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toAPIProduct(p))
	}
	return out
}

func toAPIBusiness(b *models.Business, products []*models.Product) api.Business {
	return api.Business{
		Name:         b.Name,
		Slug:         b.Slug,
		OwnerPhone:   b.OwnerPhone,
		Description:  b.Description,
		Logo:         b.Logo,
		BusinessType: b.BusinessType,
		Products:     toAPIProducts(products),
		ProductCount: b.ProductCount,
		CreatedAt:    b.CreatedAt,
	}
}

// applyProductRequest переносит заданные поля запроса в товар
func applyProductRequest(p *models.Product, req *api.ProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.ExchangeFor != nil {
		p.ExchangeFor = *req.ExchangeFor
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
}

// applyBusinessRequest переносит заданные поля запроса в бутик
func applyBusinessRequest(b *models.Business, req *api.BusinessUpdateRequest) {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Logo != nil {
		b.Logo = *req.Logo
	}
	if req.BusinessType != nil {
		b.BusinessType = *req.BusinessType
	}
}
