package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a product name. Accents are
// stripped by decomposing to NFD and dropping combining marks.
//
//   - "Étoile Solitaire Ring" → "etoile-solitaire-ring"
//   - "Eterna  18kt Band!" → "eterna-18kt-band"
func Generate(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix appends a disambiguating suffix, e.g. the product ID, to a slug.
func WithSuffix(name, suffix string) string {
	base, tail := Generate(name), Generate(suffix)
	switch {
	case base == "":
		return tail
	case tail == "":
		return base
	default:
		return base + "-" + tail
	}
}
