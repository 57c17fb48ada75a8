package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
)

const businessQuery = `
	SELECT b.id, b.owner_id, u.phone, b.name, b.slug, b.description, b.logo, b.business_type, b.created_at,
		(SELECT COUNT(*) FROM products p WHERE p.business_id = b.id)
	FROM businesses b
	JOIN users u ON u.id = b.owner_id
`

// GetBusinessByOwner returns the business of a user
func (s *Storage) GetBusinessByOwner(ctx context.Context, ownerID string) (*models.Business, error) {
	return s.getBusiness(ctx, businessQuery+`WHERE b.owner_id = ?`, ownerID)
}

// GetBusinessBySlug returns a business by its public slug
func (s *Storage) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	return s.getBusiness(ctx, businessQuery+`WHERE b.slug = ?`, slug)
}

func (s *Storage) getBusiness(ctx context.Context, query string, arg any) (*models.Business, error) {
	business := &models.Business{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&business.ID,
		&business.OwnerID,
		&business.OwnerPhone,
		&business.Name,
		&business.Slug,
		&business.Description,
		&business.Logo,
		&business.BusinessType,
		&business.CreatedAt,
		&business.ProductCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return business, nil
}

// UpdateBusiness saves name, description, logo and type. The slug never changes.
func (s *Storage) UpdateBusiness(ctx context.Context, business *models.Business) error {
	query := `
		UPDATE businesses
		SET name = ?, description = ?, logo = ?, business_type = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		business.Name,
		business.Description,
		business.Logo,
		business.BusinessType,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return expectAffected(result, storage.ErrBusinessNotFound)
}
