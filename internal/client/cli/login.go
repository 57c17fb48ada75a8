package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/phone"
	"github.com/iudanet/niplan/internal/whatsapp"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	var rawPhone string
	if len(args) > 0 {
		rawPhone = args[0]
	} else {
		var err error
		rawPhone, err = c.io.ReadInput("WhatsApp number: ")
		if err != nil {
			return fmt.Errorf("failed to read phone: %w", err)
		}
	}

	resp, err := c.authService.RequestOTP(ctx, rawPhone)
	if err != nil {
		return err
	}

	c.io.Printf("Code sent to %s over WhatsApp", phone.Mask(phone.Normalize(rawPhone)))
	if resp.ExpiresIn > 0 {
		c.io.Printf(" (valid for %d seconds)", resp.ExpiresIn)
	}
	c.io.Println()
	if resp.CodeDebug != "" {
		c.io.Printf("Debug code: %s\n", resp.CodeDebug)
	}

	code, err := c.io.ReadSecret("Code: ")
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	session, err := c.authService.VerifyOTP(ctx, rawPhone, code)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Role: %s\n", session.Role)
	if session.BusinessSlug != "" {
		c.io.Printf("Shop: %s\n", whatsapp.ShopURL(c.shopOrigin, session.BusinessSlug))
	}
	if session.Role == storage.RoleSuperadmin {
		c.io.Println("Run 'niplan admin' to open the admin dashboard.")
	}

	return nil
}
