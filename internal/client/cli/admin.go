package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/niplan/internal/phone"
	"github.com/iudanet/niplan/pkg/api"
)

// runAdmin загружает пользователей и коды параллельно, как дашборд администратора
func (c *Cli) runAdmin(ctx context.Context) error {
	var (
		users []api.AdminUser
		otps  []api.AdminOTP
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = c.market.AdminUsers(gctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		otps, err = c.market.AdminOTPs(gctx)
		if err != nil {
			return fmt.Errorf("failed to load codes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.io.Printf("=== Users (%d) ===\n", len(users))
	tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PHONE\tROLE\tSHOP\tACTIVE\tCREATED")
	for _, u := range users {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			u.Phone, u.Role, u.BusinessSlug, u.IsActive, u.CreatedAt.Format(time.DateOnly))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("=== Codes (%d) ===\n", len(otps))
	now := c.now()
	tw = tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PHONE\tSTATUS\tCREATED")
	for _, o := range otps {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n",
			phone.Mask(o.Phone), otpStatus(o, now), o.CreatedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

func otpStatus(o api.AdminOTP, now time.Time) string {
	switch {
	case o.Used:
		return "used"
	case now.After(o.ExpiresAt):
		return "expired"
	default:
		return "pending"
	}
}
