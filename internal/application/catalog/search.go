package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// searchNormalizer descompone (NFD), elimina marcas diacríticas y recompone.
var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch prepara un término de búsqueda del catálogo: recorta,
// pasa a minúsculas y elimina tildes ("Limón" y "limon" buscan lo mismo).
func NormalizeSearch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	normalized, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		return s
	}
	return normalized
}
