package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/niplan/pkg/api"
)

func (c *Cli) runBusiness(ctx context.Context) error {
	business, err := c.market.GetMyBusiness(ctx)
	if err != nil {
		return fmt.Errorf("failed to get your shop: %w", err)
	}
	return c.render("business", businessTemplate, business)
}

func (c *Cli) runBusinessUpdate(ctx context.Context, args []string) error {
	var name, description, logo, businessType string
	fs := c.flagSet("business-update")
	fs.StringVar(&name, "name", "", "shop name")
	fs.StringVar(&description, "description", "", "shop description")
	fs.StringVar(&logo, "logo", "", "logo URL")
	fs.StringVar(&businessType, "type", "", "VENTE or TROC")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req api.BusinessUpdateRequest
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			req.Name = &name
		case "description":
			req.Description = &description
		case "logo":
			req.Logo = &logo
		case "type":
			businessType = strings.ToUpper(strings.TrimSpace(businessType))
			req.BusinessType = &businessType
		}
	})

	if req == (api.BusinessUpdateRequest{}) {
		return fmt.Errorf("nothing to update. Usage: niplan business-update [--name N] [--description D] [--logo URL] [--type VENTE|TROC]")
	}
	if req.BusinessType != nil && *req.BusinessType != api.BusinessTypeSale && *req.BusinessType != api.BusinessTypeBarter {
		return fmt.Errorf("unknown shop type %q (VENTE, TROC)", businessType)
	}

	business, err := c.market.UpdateMyBusiness(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update your shop: %w", err)
	}

	c.io.Println("✓ Shop updated")
	return c.render("business", businessTemplate, business)
}
