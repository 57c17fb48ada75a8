// Package whatsapp builds wa.me deep links and share URLs.
// Only string templates live here; nothing is sent.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iudanet/niplan/internal/catalog"
	"github.com/iudanet/niplan/internal/phone"
	"github.com/iudanet/niplan/pkg/api"
)

const (
	// DefaultPhone номер Niplan, используется когда у товара нет телефона продавца
	DefaultPhone = "243899530506"

	linkBase       = "https://wa.me/"
	supportMessage = "Bonjour Niplan, j'ai besoin d'aide pour : "
)

// OrderMessage текст заказа товара
func OrderMessage(p api.Product) string {
	return fmt.Sprintf(
		"Bonjour, je suis intéressé par votre produit : *%s* au prix de %s.\n\nEst-il toujours disponible ?\n\n_Vu sur Niplan Market_",
		p.Name, catalog.FormatPrice(p.Price, p.Currency),
	)
}

// OrderLink returns the deep link that opens a chat with the vendor
// pre-filled with OrderMessage.
func OrderLink(p api.Product) string {
	return Link(p.VendeurPhone, OrderMessage(p))
}

// SupportLink открывает чат поддержки Niplan; topic дописывается к приветствию
func SupportLink(topic string) string {
	return Link(DefaultPhone, supportMessage+topic)
}

// ContactLink открывает чат с владельцем бутика без текста
func ContactLink(ownerPhone string) string {
	return Link(ownerPhone, "")
}

// Link builds https://wa.me/<digits>?text=<message>.
// An empty or digitless phone falls back to DefaultPhone.
func Link(rawPhone, message string) string {
	digits := strings.TrimPrefix(phone.Normalize(rawPhone), "+")
	if digits == "" {
		digits = DefaultPhone
	}

	link := linkBase + digits
	if message != "" {
		link += "?text=" + encodeComponent(message)
	}
	return link
}

// ShopURL публичная ссылка на витрину для отправки клиентам
func ShopURL(origin, slug string) string {
	return strings.TrimRight(origin, "/") + "/b/" + url.PathEscape(slug)
}

// encodeComponent кодирует текст для query: пробел как %20, не "+"
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
