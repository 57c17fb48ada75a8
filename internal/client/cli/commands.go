package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/niplan/internal/client/transport"
)

// Run выполняет команду. Ошибка возвращается вызывающему, код выхода выбирает main.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	err := c.dispatch(ctx, command, args)
	if errors.Is(err, transport.ErrNoCredential) {
		return ErrNotAuthenticated
	}
	return err
}

func (c *Cli) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "products":
		return c.runProducts(ctx, args)
	case "shop":
		return c.runShop(ctx, args)
	case "order-link":
		return c.runOrderLink(ctx, args)
	case "support":
		return c.runSupport(args)
	case "business":
		return c.runBusiness(ctx)
	case "business-update":
		return c.runBusinessUpdate(ctx, args)
	case "my-products":
		return c.runMyProducts(ctx)
	case "product-add":
		return c.runProductAdd(ctx, args)
	case "product-edit":
		return c.runProductEdit(ctx, args)
	case "product-delete":
		return c.runProductDelete(ctx, args)
	case "admin":
		return c.runAdmin(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
