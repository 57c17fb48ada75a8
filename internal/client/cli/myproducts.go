package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/niplan/internal/catalog"
)

func (c *Cli) runMyProducts(ctx context.Context) error {
	c.io.Println("=== My Products ===")

	products, err := c.market.ListMyProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list your products: %w", err)
	}

	if len(products) == 0 {
		c.io.Println()
		c.io.Println("No products yet.")
		c.io.Println("Use 'niplan product-add' to add your first product.")
		return nil
	}

	catalog.Sort(products, catalog.OrderRecent)
	c.io.Printf("Found %d product(s):\n", len(products))
	return c.render("products", productListTemplate, products)
}

func (c *Cli) runProductAdd(ctx context.Context, args []string) error {
	req, err := c.parseProductFlags("product-add", args)
	if err != nil {
		return err
	}

	// Обязательные поля запрашиваются интерактивно, если не заданы флагами
	if req.Name == nil {
		name, err := c.io.ReadInput("Name: ")
		if err != nil {
			return fmt.Errorf("failed to read name: %w", err)
		}
		if name == "" {
			return fmt.Errorf("product name cannot be empty")
		}
		req.Name = &name
	}
	if req.Price == nil && req.ExchangeFor == nil {
		raw, err := c.io.ReadInput("Price: ")
		if err != nil {
			return fmt.Errorf("failed to read price: %w", err)
		}
		price, err := parsePrice(raw)
		if err != nil {
			return err
		}
		req.Price = &price
	}
	if req.Currency == nil {
		currency := defaultCurrency
		req.Currency = &currency
	}
	if req.IsAvailable == nil {
		available := true
		req.IsAvailable = &available
	}

	product, err := c.market.CreateProduct(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	c.io.Println("✓ Product created")
	return c.render("product", productTemplate, product)
}

func (c *Cli) runProductEdit(ctx context.Context, args []string) error {
	slug, rest, err := requireArg(args, "niplan product-edit <slug> [flags]")
	if err != nil {
		return err
	}

	req, err := c.parseProductFlags("product-edit", rest)
	if err != nil {
		return err
	}

	product, err := c.market.EditProduct(ctx, slug, req)
	if err != nil {
		return fmt.Errorf("failed to edit product: %w", err)
	}

	c.io.Println("✓ Product updated")
	return c.render("product", productTemplate, product)
}

func (c *Cli) runProductDelete(ctx context.Context, args []string) error {
	slug, rest, err := requireArg(args, "niplan product-delete <slug> [--yes]")
	if err != nil {
		return err
	}

	var yes bool
	fs := c.flagSet("product-delete")
	fs.BoolVar(&yes, "yes", false, "do not ask for confirmation")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	if !yes {
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete %s? [y/N]: ", slug))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			return ErrAborted
		}
	}

	if err := c.market.DeleteProduct(ctx, slug); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	c.io.Printf("✓ Product %s deleted\n", slug)
	return nil
}
