package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/iudanet/niplan/internal/client/storage"
)

// DefaultProtectedMarkers подстроки пути, требующие авторизации
var DefaultProtectedMarkers = []string{"/my-", "/admin/"}

// Decorator attaches the stored access token to outgoing requests.
// It never blocks on network and never mutates the store.
type Decorator struct {
	store   storage.CredentialStorage
	markers []string
}

// NewDecorator создает декоратор. Без markers используются DefaultProtectedMarkers.
func NewDecorator(store storage.CredentialStorage, markers ...string) *Decorator {
	if len(markers) == 0 {
		markers = DefaultProtectedMarkers
	}
	return &Decorator{store: store, markers: markers}
}

// IsProtected reports whether path requires a credential
func (d *Decorator) IsProtected(path string) bool {
	for _, marker := range d.markers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// Decorate sets the Authorization header and returns the token it attached
// ("" when none). A protected request without a usable token fails with ErrNoCredential.
func (d *Decorator) Decorate(ctx context.Context, req *http.Request) (string, error) {
	token, err := d.store.Get(ctx, storage.KeyAccessToken)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}

	if IsTrivialToken(token) {
		if d.IsProtected(req.URL.Path) {
			return "", fmt.Errorf("%w: %s %s", ErrNoCredential, req.Method, req.URL.Path)
		}
		return "", nil
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return token, nil
}

// IsTrivialToken reports whether token is absent for all practical purposes.
// "null" and "undefined" are stringified empty values written by older web clients.
func IsTrivialToken(token string) bool {
	switch strings.TrimSpace(token) {
	case "", "null", "undefined":
		return true
	}
	return false
}
