package storage

import (
	"context"

	"github.com/iudanet/niplan/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUserWithBusiness creates a user and its empty business in one transaction
	// Returns ErrUserAlreadyExists if phone is taken, ErrSlugTaken if business slug is taken
	CreateUserWithBusiness(ctx context.Context, user *models.User, business *models.Business) error

	// GetUserByPhone retrieves user by canonical phone
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns all users, newest first
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUserRole changes user role
	// Returns ErrUserNotFound if user doesn't exist
	UpdateUserRole(ctx context.Context, userID, role string) error
}

// OTPStorage defines interface for one-time code persistence
type OTPStorage interface {
	// CreateOTP stores a newly issued code
	CreateOTP(ctx context.Context, otp *models.OTP) error

	// GetLatestOTP returns the most recent code issued for phone
	// Returns ErrOTPNotFound if none was issued
	GetLatestOTP(ctx context.Context, phone string) (*models.OTP, error)

	// MarkOTPUsed consumes the code
	// Returns ErrOTPAlreadyUsed if it was consumed before
	MarkOTPUsed(ctx context.Context, otpID string) error

	// ListOTPs returns issued codes, newest first
	ListOTPs(ctx context.Context, limit int) ([]*models.OTP, error)
}
