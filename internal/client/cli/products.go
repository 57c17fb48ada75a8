package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/niplan/internal/catalog"
	"github.com/iudanet/niplan/internal/whatsapp"
)

func (c *Cli) runProducts(ctx context.Context, args []string) error {
	var (
		text      string
		sortOrder string
		currency  string
		available bool
		barter    bool
	)
	fs := c.flagSet("products")
	fs.StringVar(&text, "q", "", "search text")
	fs.StringVar(&sortOrder, "sort", string(catalog.OrderRecent), "recent, price_asc, price_desc or name")
	fs.StringVar(&currency, "currency", "", "USD or CDF")
	fs.BoolVar(&available, "available", false, "only available products")
	fs.BoolVar(&barter, "barter", false, "only products offered in exchange")
	if err := fs.Parse(args); err != nil {
		return err
	}

	order, err := catalog.ParseOrder(sortOrder)
	if err != nil {
		return err
	}
	if currency != "" {
		if currency, err = parseCurrency(currency); err != nil {
			return err
		}
	}

	products, err := c.market.ListProducts(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	products = catalog.Filter(products, catalog.Query{
		Text:          text,
		Currency:      currency,
		AvailableOnly: available,
		BarterOnly:    barter,
	})
	catalog.Sort(products, order)

	if len(products) == 0 {
		c.io.Println("No products found.")
		return nil
	}

	c.io.Printf("Found %d product(s):\n", len(products))
	return c.render("products", productListTemplate, products)
}

func (c *Cli) runShop(ctx context.Context, args []string) error {
	slug, _, err := requireArg(args, "niplan shop <slug>")
	if err != nil {
		return err
	}

	business, err := c.market.GetBusiness(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to get shop: %w", err)
	}
	if business.ProductCount == 0 {
		business.ProductCount = len(business.Products)
	}

	if err := c.render("business", businessTemplate, business); err != nil {
		return err
	}
	if len(business.Products) == 0 {
		c.io.Println()
		c.io.Println("This shop has no products yet.")
		return nil
	}

	products := business.Products
	catalog.Sort(products, catalog.OrderRecent)
	return c.render("products", productListTemplate, products)
}

// runOrderLink печатает ссылку wa.me с готовым текстом заказа
func (c *Cli) runOrderLink(ctx context.Context, args []string) error {
	slug, _, err := requireArg(args, "niplan order-link <product-slug>")
	if err != nil {
		return err
	}

	products, err := c.market.ListProducts(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	for _, p := range products {
		if p.Slug != slug {
			continue
		}
		if !p.IsAvailable {
			c.io.Println("Warning: this product is marked as unavailable.")
		}
		c.io.Println(whatsapp.OrderLink(p))
		return nil
	}

	return fmt.Errorf("product %q not found", slug)
}

func (c *Cli) runSupport(args []string) error {
	c.io.Println(whatsapp.SupportLink(strings.Join(args, " ")))
	return nil
}
