package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this phone already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrOTPNotFound indicates that no code was issued for the phone
	ErrOTPNotFound = errors.New("otp not found")

	// ErrOTPAlreadyUsed indicates that the code was consumed concurrently
	ErrOTPAlreadyUsed = errors.New("otp already used")

	// ErrBusinessNotFound indicates that business was not found
	ErrBusinessNotFound = errors.New("business not found")

	// ErrProductNotFound indicates that product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrSlugTaken indicates a slug collision
	ErrSlugTaken = errors.New("slug already taken")
)
