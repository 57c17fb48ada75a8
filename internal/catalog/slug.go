package catalog

import "strings"

// maxSlugBase длина slug без суффикса
const maxSlugBase = 60

// Slugify строит основу slug из названия: "Téléphone Itel 5G" -> "telephone-itel-5g".
// Символы вне [a-z0-9] схлопываются в один дефис; пустой результат возможен.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range fold(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
		if b.Len() >= maxSlugBase {
			break
		}
	}
	return b.String()
}
