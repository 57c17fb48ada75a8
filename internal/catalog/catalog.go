// Package catalog filters, sorts and formats product lists already fetched from the API.
package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/iudanet/niplan/pkg/api"
)

// Order порядок сортировки каталога
type Order string

const (
	OrderRecent    Order = "recent"
	OrderPriceAsc  Order = "price_asc"
	OrderPriceDesc Order = "price_desc"
	OrderName      Order = "name"
)

// ParseOrder проверяет значение флага --sort. Пустая строка означает OrderRecent.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderRecent, nil
	case OrderRecent, OrderPriceAsc, OrderPriceDesc, OrderName:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (recent, price_asc, price_desc, name)", s)
	}
}

// Query критерии фильтрации
type Query struct {
	// Text ищется в названии, описании, месте и названии бутика без учета регистра и акцентов
	Text          string
	Currency      string
	AvailableOnly bool
	// BarterOnly только товары, которые можно получить в обмен (troc)
	BarterOnly bool
}

// Filter returns the products matching q, preserving order.
// The input slice is not modified.
func Filter(products []api.Product, q Query) []api.Product {
	needle := fold(q.Text)

	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		if q.AvailableOnly && !p.IsAvailable {
			continue
		}
		if q.BarterOnly && strings.TrimSpace(p.ExchangeFor) == "" {
			continue
		}
		if q.Currency != "" && !strings.EqualFold(p.Currency, q.Currency) {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p api.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Description, p.Location, p.BusinessName, p.ExchangeFor} {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

// Sort sorts products in place. Ties keep their original relative order.
func Sort(products []api.Product, order Order) {
	slices.SortStableFunc(products, func(a, b api.Product) int {
		switch order {
		case OrderPriceAsc:
			return cmp.Compare(a.Price, b.Price)
		case OrderPriceDesc:
			return cmp.Compare(b.Price, a.Price)
		case OrderName:
			return cmp.Compare(fold(a.Name), fold(b.Name))
		default:
			return b.UpdatedAt.Compare(a.UpdatedAt)
		}
	})
}

var printer = message.NewPrinter(language.English)

// FormatPrice форматирует цену с разделителями разрядов: "15,000 CDF", "12.50 USD"
func FormatPrice(price float64, currency string) string {
	var amount string
	if price == math.Trunc(price) {
		amount = printer.Sprintf("%d", int64(price))
	} else {
		amount = printer.Sprintf("%.2f", price)
	}
	return strings.TrimSpace(amount + " " + currency)
}

// fold приводит строку к нижнему регистру и убирает диакритику: "Créée" -> "creee"
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
