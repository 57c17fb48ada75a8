// Package phone приводит номера WhatsApp к канонической форме "+<код страны><цифры>".
package phone

import (
	"regexp"
	"strings"
)

const (
	// DefaultCountryCode код страны по умолчанию (ДР Конго)
	DefaultCountryCode = "+243"
	// CanonicalLocalLen длина канонического номера ДРК: "+243" + 9 цифр
	CanonicalLocalLen = 13

	countryDigits = "243"
)

// internationalPattern формат, который принимает форма логина: "+" и 8-15 цифр без ведущего нуля
var internationalPattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Normalize converts user input into the canonical form.
// It never fails: malformed input degrades to a best-effort value
// ("" when no digits are present).
func Normalize(raw string) string {
	hasPlus := strings.HasPrefix(raw, "+")
	digits := onlyDigits(raw)

	// Убираем код страны, чтобы не получить "+243243..."
	local := digits
	hadCountry := strings.HasPrefix(local, countryDigits)
	if hadCountry {
		local = local[len(countryDigits):]
	}

	if local == "" {
		if hasPlus {
			return "+" + digits
		}
		return ""
	}

	switch {
	case strings.HasPrefix(local, "0"):
		// Локальный формат 08xx: все ведущие нули (не только один) заменяются кодом страны
		return DefaultCountryCode + strings.TrimLeft(local, "0")
	case !hasPlus || hadCountry:
		return DefaultCountryCode + local
	default:
		return "+" + digits
	}
}

// IsValid reports whether raw looks like a usable number.
// Numbers in the default country must have exactly 9 local digits; anything
// else is accepted as-is, including the empty string.
func IsValid(raw string) bool {
	normalized := Normalize(raw)
	return len(normalized) == CanonicalLocalLen || !strings.HasPrefix(normalized, DefaultCountryCode)
}

// IsInternational проверяет строгий международный формат (после удаления пробелов)
func IsInternational(raw string) bool {
	return internationalPattern.MatchString(strings.Join(strings.Fields(raw), ""))
}

// Mask скрывает середину номера для вывода пользователю: "+24381...5678"
func Mask(canonical string) string {
	if len(canonical) <= 10 {
		return canonical
	}
	return canonical[:6] + "..." + canonical[len(canonical)-4:]
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
