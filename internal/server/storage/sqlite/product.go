package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
)

const productQuery = `
	SELECT p.id, p.business_id, p.name, p.slug, p.description, p.location, p.exchange_for,
		p.currency, p.image, p.price, p.is_available, p.created_at, p.updated_at,
		b.name, b.slug, u.phone
	FROM products p
	JOIN businesses b ON b.id = p.business_id
	JOIN users u ON u.id = b.owner_id
`

// CreateProduct stores a new product
func (s *Storage) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, business_id, name, slug, description, location, exchange_for,
			currency, image, price, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.BusinessID,
		product.Name,
		product.Slug,
		product.Description,
		product.Location,
		product.ExchangeFor,
		product.Currency,
		product.Image,
		product.Price,
		product.IsAvailable,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "products.slug") {
			return storage.ErrSlugTaken
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// GetProduct returns a product of the business by slug
func (s *Storage) GetProduct(ctx context.Context, businessID, slug string) (*models.Product, error) {
	query := productQuery + `WHERE p.business_id = ? AND p.slug = ?`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, businessID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// UpdateProduct saves all editable fields
func (s *Storage) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, location = ?, exchange_for = ?, currency = ?,
			image = ?, price = ?, is_available = ?, updated_at = ?
		WHERE id = ? AND business_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		product.Name,
		product.Description,
		product.Location,
		product.ExchangeFor,
		product.Currency,
		product.Image,
		product.Price,
		product.IsAvailable,
		product.UpdatedAt,
		product.ID,
		product.BusinessID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return expectAffected(result, storage.ErrProductNotFound)
}

// DeleteProduct removes a product of the business
func (s *Storage) DeleteProduct(ctx context.Context, businessID, slug string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM products WHERE business_id = ? AND slug = ?`, businessID, slug)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return expectAffected(result, storage.ErrProductNotFound)
}

// ListBusinessProducts returns products of one business, newest first
func (s *Storage) ListBusinessProducts(ctx context.Context, businessID string) ([]*models.Product, error) {
	query := productQuery + `WHERE p.business_id = ? ORDER BY p.created_at DESC, p.rowid DESC`
	return s.listProducts(ctx, query, businessID)
}

// ListProducts returns the public catalog, newest first
func (s *Storage) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	var (
		where []string
		args  []any
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, `(p.name LIKE ? OR p.description LIKE ?)`)
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}
	if filter.BusinessSlug != "" {
		where = append(where, `b.slug = ?`)
		args = append(args, filter.BusinessSlug)
	}
	if filter.Currency != "" {
		where = append(where, `p.currency = ?`)
		args = append(args, filter.Currency)
	}
	if filter.OnlyAvailable {
		where = append(where, `p.is_available = 1`)
	}

	query := productQuery
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY p.created_at DESC, p.rowid DESC`

	return s.listProducts(ctx, query, args...)
}

func (s *Storage) listProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID,
		&product.BusinessID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Location,
		&product.ExchangeFor,
		&product.Currency,
		&product.Image,
		&product.Price,
		&product.IsAvailable,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.BusinessName,
		&product.BusinessSlug,
		&product.OwnerPhone,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
