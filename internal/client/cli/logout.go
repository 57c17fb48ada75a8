package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/niplan/internal/client/storage"
)

// runLogout отзывает refresh token на сервере и очищает локальную сессию.
// Сервер недоступен: сессия все равно удаляется.
func (c *Cli) runLogout(ctx context.Context) error {
	session, err := c.authService.Session(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		c.io.Println("Not logged in, nothing to do.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if session.BusinessSlug != "" {
		c.io.Printf("✓ Logged out of %s (%s)\n", session.BusinessSlug, session.Role)
	} else {
		c.io.Println("✓ Logged out")
	}
	return nil
}
