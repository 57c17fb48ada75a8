package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/niplan/internal/client/storage"
)

// Navigator показывает пользователю экран входа
type Navigator interface {
	ToLogin(reason string)
}

// NavigatorFunc адаптер функции к Navigator
type NavigatorFunc func(reason string)

func (f NavigatorFunc) ToLogin(reason string) { f(reason) }

// Teardown clears the session and sends the user back to login.
type Teardown struct {
	store     storage.CredentialStorage
	navigator Navigator
	logger    *slog.Logger
}

// NewTeardown создает Teardown. navigator может быть nil.
func NewTeardown(store storage.CredentialStorage, navigator Navigator, logger *slog.Logger) *Teardown {
	if logger == nil {
		logger = slog.Default()
	}
	return &Teardown{store: store, navigator: navigator, logger: logger}
}

// Run clears every credential key in one store operation, then signals the navigator.
// Running it on an already empty store is a no-op: nothing is signalled twice.
func (t *Teardown) Run(ctx context.Context, reason string) error {
	removed, err := t.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if removed == 0 {
		return nil
	}

	t.logger.InfoContext(ctx, "session cleared", slog.String("reason", reason), slog.Int("keys", removed))

	if t.navigator != nil {
		t.navigator.ToLogin(reason)
	}
	return nil
}
