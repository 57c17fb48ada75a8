package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/iudanet/niplan/internal/catalog"
	"github.com/iudanet/niplan/internal/whatsapp"
	"github.com/iudanet/niplan/pkg/api"
)

const defaultCurrency = "USD"

// flagSet создает набор флагов подкоманды; ошибки разбора печатаются в c.io
func (c *Cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

// render выводит данные по шаблону из template.go
func (c *Cli) render(name, text string, data any) error {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"price": catalog.FormatPrice,
		"ago": func(t time.Time) string {
			return catalog.TimeAgo(t, c.now())
		},
		"shopURL": func(slug string) string {
			return whatsapp.ShopURL(c.shopOrigin, slug)
		},
		"contact": whatsapp.ContactLink,
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// productFlags значения флагов product-add / product-edit
type productFlags struct {
	name        string
	description string
	location    string
	exchangeFor string
	currency    string
	image       string
	price       float64
	available   bool
}

// parseProductFlags возвращает запрос, в который попадают только явно заданные флаги
func (c *Cli) parseProductFlags(command string, args []string) (api.ProductRequest, error) {
	var f productFlags
	fs := c.flagSet(command)
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.description, "description", "", "product description")
	fs.StringVar(&f.location, "location", "", "where the product can be picked up")
	fs.StringVar(&f.exchangeFor, "exchange-for", "", "what you accept in exchange (barter)")
	fs.StringVar(&f.currency, "currency", defaultCurrency, "USD or CDF")
	fs.StringVar(&f.image, "image", "", "image URL")
	fs.Float64Var(&f.price, "price", 0, "price")
	fs.BoolVar(&f.available, "available", true, "product is available")

	if err := fs.Parse(args); err != nil {
		return api.ProductRequest{}, err
	}
	if fs.NArg() > 0 {
		return api.ProductRequest{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var req api.ProductRequest
	var visitErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			req.Name = &f.name
		case "description":
			req.Description = &f.description
		case "location":
			req.Location = &f.location
		case "exchange-for":
			req.ExchangeFor = &f.exchangeFor
		case "currency":
			currency, err := parseCurrency(f.currency)
			if err != nil {
				visitErr = err
				return
			}
			req.Currency = &currency
		case "image":
			req.Image = &f.image
		case "price":
			if f.price < 0 {
				visitErr = errors.New("price cannot be negative")
				return
			}
			req.Price = &f.price
		case "available":
			req.IsAvailable = &f.available
		}
	})
	if visitErr != nil {
		return api.ProductRequest{}, visitErr
	}

	return req, nil
}

func parseCurrency(s string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(s))
	if currency != "USD" && currency != "CDF" {
		return "", fmt.Errorf("unknown currency %q (USD, CDF)", s)
	}
	return currency, nil
}

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if price < 0 {
		return 0, errors.New("price cannot be negative")
	}
	return price, nil
}

// requireArg возвращает единственный позиционный аргумент команды
func requireArg(args []string, usage string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, fmt.Errorf("missing argument. Usage: %s", usage)
	}
	return args[0], args[1:], nil
}
