package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
)

const userColumns = `u.id, u.phone, u.role, u.is_active, u.created_at, COALESCE(b.slug, '')`

// CreateUserWithBusiness creates a user and its empty business in one transaction
func (s *Storage) CreateUserWithBusiness(ctx context.Context, user *models.User, business *models.Business) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, phone, role, is_active, created_at)
			VALUES (?, ?, ?, ?, ?)
		`,
			user.ID,
			user.Phone,
			user.Role,
			user.IsActive,
			user.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, "users.phone") {
				return storage.ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO businesses (id, owner_id, name, slug, description, logo, business_type, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			business.ID,
			user.ID,
			business.Name,
			business.Slug,
			business.Description,
			business.Logo,
			business.BusinessType,
			business.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, "businesses.slug") {
				return storage.ErrSlugTaken
			}
			return fmt.Errorf("failed to insert business: %w", err)
		}

		business.OwnerID = user.ID
		user.BusinessSlug = business.Slug
		return nil
	})
}

// GetUserByPhone retrieves user by canonical phone
func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN businesses b ON b.owner_id = u.id
		WHERE u.phone = ?
	`
	return s.getUser(ctx, query, phone)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN businesses b ON b.owner_id = u.id
		WHERE u.id = ?
	`
	return s.getUser(ctx, query, userID)
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users, newest first
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN businesses b ON b.owner_id = u.id
		ORDER BY u.created_at DESC, u.rowid DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateUserRole changes user role
func (s *Storage) UpdateUserRole(ctx context.Context, userID, role string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return expectAffected(result, storage.ErrUserNotFound)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Phone,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.BusinessSlug,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// expectAffected возвращает notFound, если запрос не затронул ни одной строки
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
