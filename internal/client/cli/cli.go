package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iudanet/niplan/internal/client/auth"
	"github.com/iudanet/niplan/internal/client/iocli"
	"github.com/iudanet/niplan/internal/client/transport"
)

var (
	// ErrUnknownCommand команда не распознана
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNotAuthenticated команда требует входа
	ErrNotAuthenticated = errors.New("not authenticated, run `niplan login` first")
	// ErrAborted пользователь отменил действие
	ErrAborted = errors.New("aborted")
)

// SessionExpiredMessage выводится, когда координатор завершил сессию
const SessionExpiredMessage = "session expired, run `niplan login`"

type Cli struct {
	io          iocli.IO
	authService auth.Service
	market      Market
	now         func() time.Time
	shopOrigin  string
}

func New(stdio iocli.IO, authService auth.Service, market Market, shopOrigin string) *Cli {
	return &Cli{
		io:          stdio,
		authService: authService,
		market:      market,
		shopOrigin:  shopOrigin,
		now:         time.Now,
	}
}

// Navigator возвращает обработчик завершения сессии для координатора:
// вместо экрана логина CLI печатает подсказку
func Navigator(out iocli.IO) transport.Navigator {
	return transport.NavigatorFunc(func(reason string) {
		out.Printf("%s: %s\n", reason, SessionExpiredMessage)
	})
}

func PrintUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, usageText)
}

const usageText = `Niplan Market Client

Usage:
  niplan [OPTIONS] COMMAND [ARGS]

Options:
  --version              Show version information
  --server URL           API base URL (default: http://localhost:8000/api, env NIPLAN_API_URL)
  --db PATH              Path to local session database (default: niplan-client.db, env NIPLAN_DB)
  --key PATH             Path to session encryption key (default: niplan.key, env NIPLAN_KEY_FILE)
  --ephemeral            Keep the session in memory only
  --log-level LEVEL      debug, info, warn or error (env NIPLAN_LOG_LEVEL)

Commands:
  login [phone]          Log in with a one-time code sent over WhatsApp
  logout                 Log out and wipe the local session
  status                 Show authentication status

  products [--q TEXT] [--sort recent|price_asc|price_desc|name] [--currency USD|CDF] [--available] [--barter]
                         Browse the public catalog
  shop <slug>            Show a shop and its products
  order-link <product>   Print the WhatsApp order link for a product
  support [topic]        Print the WhatsApp link to Niplan support

  business               Show your shop
  business-update [--name N] [--description D] [--logo URL] [--type VENTE|TROC]
                         Update your shop
  my-products            List your products
  product-add [--name N] [--price P] [--currency USD|CDF] [--description D] [--location L]
              [--exchange-for X] [--image URL] [--available=false]
                         Add a product
  product-edit <slug> [same flags as product-add]
                         Edit a product
  product-delete <slug> [--yes]
                         Delete a product

  admin                  List users and recent OTPs (superadmin only)

Examples:
  niplan login +243812345678
  niplan products --q wax --sort price_asc
  niplan product-add --name "Pagne wax" --price 15000 --currency CDF
  niplan --server https://api.example.com/api status
`
