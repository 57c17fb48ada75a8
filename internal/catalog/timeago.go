package catalog

import (
	"fmt"
	"time"
)

// TimeAgo returns the relative French label shown on product cards.
// Times in the future are treated as "now".
func TimeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	if seconds < 60 {
		return "À l'instant"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("Il y a %d min", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("Il y a %dh", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("Il y a %dj", days)
	}
	if weeks := days / 7; weeks < 4 {
		return fmt.Sprintf("Il y a %dsem", weeks)
	}
	if days < 365 {
		// 28-29 дней: недель уже 4, но полных 30 дней еще нет
		return fmt.Sprintf("Il y a %dmois", max(days/30, 1))
	}
	years := days / 365
	if years > 1 {
		return fmt.Sprintf("Il y a %dans", years)
	}
	return "Il y a 1an"
}
