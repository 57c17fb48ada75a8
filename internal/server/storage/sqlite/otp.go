package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/niplan/internal/models"
	"github.com/iudanet/niplan/internal/server/storage"
)

// CreateOTP stores a newly issued code
func (s *Storage) CreateOTP(ctx context.Context, otp *models.OTP) error {
	query := `
		INSERT INTO otps (id, phone, code_hash, used, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		otp.ID,
		otp.Phone,
		otp.CodeHash,
		otp.Used,
		otp.ExpiresAt,
		otp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert otp: %w", err)
	}

	return nil
}

// GetLatestOTP returns the most recent code issued for phone
func (s *Storage) GetLatestOTP(ctx context.Context, phone string) (*models.OTP, error) {
	query := `
		SELECT id, phone, code_hash, used, expires_at, created_at
		FROM otps
		WHERE phone = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`

	otp, err := scanOTP(s.db.QueryRowContext(ctx, query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	return otp, nil
}

// MarkOTPUsed consumes the code; only one caller can win
func (s *Storage) MarkOTPUsed(ctx context.Context, otpID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE otps SET used = 1 WHERE id = ? AND used = 0`, otpID)
	if err != nil {
		return fmt.Errorf("failed to mark otp used: %w", err)
	}
	return expectAffected(result, storage.ErrOTPAlreadyUsed)
}

// ListOTPs returns issued codes, newest first
func (s *Storage) ListOTPs(ctx context.Context, limit int) ([]*models.OTP, error) {
	query := `
		SELECT id, phone, code_hash, used, expires_at, created_at
		FROM otps
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query otps: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	otps := make([]*models.OTP, 0)
	for rows.Next() {
		otp, err := scanOTP(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan otp: %w", err)
		}
		otps = append(otps, otp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating otps: %w", err)
	}

	return otps, nil
}

func scanOTP(row rowScanner) (*models.OTP, error) {
	otp := &models.OTP{}
	err := row.Scan(
		&otp.ID,
		&otp.Phone,
		&otp.CodeHash,
		&otp.Used,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return otp, nil
}
