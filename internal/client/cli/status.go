package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/niplan/internal/client/auth"
	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/whatsapp"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'niplan login' to authenticate.")
		return nil
	}

	session, err := c.authService.Session(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Role: %s\n", session.Role)
	if session.BusinessSlug != "" {
		c.io.Printf("Shop: %s\n", whatsapp.ShopURL(c.shopOrigin, session.BusinessSlug))
	}

	expiresAt, err := c.authService.TokenExpiry(ctx)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound), errors.Is(err, auth.ErrNoExpiry):
		// Только refresh token: access будет получен при первом запросе
		c.io.Println("Access token: none, it will be refreshed on the next request")
	case err != nil:
		c.io.Printf("Warning: failed to read token expiry: %v\n", err)
	default:
		remaining := expiresAt.Sub(c.now())
		c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("Access token has expired, it will be refreshed on the next request.")
		}
	}

	return nil
}
