package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Letters that do not decompose into base + combining mark.
var specialLetters = strings.NewReplacer(
	"ı", "i", "ß", "ss", "æ", "ae", "ø", "o", "œ", "oe", "ł", "l", "đ", "d", "&", " and ",
)

// Generate turns a product or category name into a URL slug. Accented Latin
// letters are folded to ASCII and every other run of non-alphanumerics
// becomes a single hyphen.
//
//	"Minimalist Linen Blazer" -> "minimalist-linen-blazer"
//	"Café Crème"              -> "cafe-creme"
//	"Tops & Tees"             -> "tops-and-tees"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = specialLetters.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
