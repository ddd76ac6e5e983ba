package utils

import "strings"

var turkishRunes = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'â': 'a', 'î': 'i', 'û': 'u',
}

// Slugify builds a URL slug: lowercase, Turkish letters folded to ASCII,
// everything non-alphanumeric dropped, runs of spaces/hyphens collapsed
// to a single hyphen. "Deniz Manzarası" -> "deniz-manzarasi".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if m, ok := turkishRunes[r]; ok {
			r = m
		}
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
