package metadata

import "strings"

// translationHints maps common non-English titles to the English title most
// catalogs index under. When a parsed title has a hint, the resolver issues
// a second round of queries with the alternate title and merges the results.
// Keys are lowercase; lookups ignore the parser's title casing.
var translationHints = map[string]string{
	"el padrino":                "The Godfather",
	"cadena perpetua":           "The Shawshank Redemption",
	"la lista de schindler":     "Schindler's List",
	"el club de la lucha":       "Fight Club",
	"origen":                    "Inception",
	"el caballero oscuro":       "The Dark Knight",
	"lo que el viento se llevo": "Gone with the Wind",
	"la guerra de las galaxias": "Star Wars",
	"el senor de los anillos":   "The Lord of the Rings",
	"la casa de papel":          "Money Heist",
}

// TranslationHint returns the alternate-language title for a parsed title,
// or "" when no hint exists.
func TranslationHint(title string) string {
	return translationHints[strings.ToLower(title)]
}
