package placeholder

import (
	"strings"

	"github.com/noopejs/go-rgen/internal/naming"
)

// Marker prefixes every placeholder token.
const Marker = "$"

// Tokens recognised in template file names and contents. No token is a
// prefix of another.
const (
	TokenRegularized = Marker + "regularized"
	TokenCamelized   = Marker + "camelized"
	TokenKebabed     = Marker + "kebabed"
	TokenCapitalized = Marker + "capitalized"
)

// Tokens lists every recognised token.
var Tokens = []string{TokenRegularized, TokenCamelized, TokenKebabed, TokenCapitalized}

// Render replaces every token in text with the matching derived form.
// Unknown "$words" are left untouched. File paths and contents go through
// this same function.
func Render(text string, forms naming.Forms) string {
	return strings.NewReplacer(
		TokenRegularized, forms.Regular,
		TokenCamelized, forms.Camel,
		TokenKebabed, forms.Kebab,
		TokenCapitalized, forms.Capitalized,
	).Replace(text)
}

// RenderName derives the forms of name and renders text with them.
func RenderName(text, name string) string {
	return Render(text, naming.Derive(name))
}

// Contains reports whether text holds at least one token.
func Contains(text string) bool {
	for _, token := range Tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
