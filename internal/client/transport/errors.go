package transport

import "errors"

var (
	// ErrNoCredential protected request attempted without an access token; no network call was made
	ErrNoCredential = errors.New("no credential for protected request")

	// ErrAuthExpired request was rejected with 401 after its single replay
	ErrAuthExpired = errors.New("authentication expired")

	// ErrRefreshFailed credential refresh failed; the session has been torn down
	ErrRefreshFailed = errors.New("credential refresh failed")

	// ErrNoRefreshToken refresh attempted with no usable refresh token stored
	ErrNoRefreshToken = errors.New("no refresh token stored")

	// ErrEmptyAccessToken refresh endpoint answered 2xx without an access token
	ErrEmptyAccessToken = errors.New("refresh response has no access token")
)
