package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	hyphenLetter  = regexp.MustCompile(`-[a-z]`)
)

// Forms holds every derived form of a unit name.
type Forms struct {
	Name        string
	Kebab       string
	Camel       string
	Capitalized string
	Regular     string
}

// Derive computes all forms of name. Forms are recomputed on every call.
func Derive(name string) Forms {
	return Forms{
		Name:        name,
		Kebab:       Kebab(name),
		Camel:       Camel(name),
		Capitalized: CapitalizedCamel(name),
		Regular:     Regularize(name),
	}
}

// Kebab converts whitespace runs and camelCase boundaries to hyphens and
// lowercases the result: "MyThing" -> "my-thing", "hello world" -> "hello-world".
func Kebab(s string) string {
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = camelBoundary.ReplaceAllString(s, "${1}-${2}")
	return lower(s)
}

// Camel lowercases the first character and collapses every "-x" into "X":
// "my-thing" -> "myThing". Whitespace is left untouched.
func Camel(s string) string {
	head, rest := splitFirst(s)
	rest = hyphenLetter.ReplaceAllStringFunc(rest, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	return lower(head) + rest
}

// Capitalize uppercases the first character and keeps the rest as is.
func Capitalize(s string) string {
	head, rest := splitFirst(s)
	return upper(head) + rest
}

// CapitalizedCamel is Capitalize(Camel(s)): "my-thing" -> "MyThing".
func CapitalizedCamel(s string) string {
	return Capitalize(Camel(s))
}

// Regularize produces a human readable title: "my-thing" -> "My Thing".
func Regularize(s string) string {
	words := strings.Split(Kebab(s), "-")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

func splitFirst(s string) (string, string) {
	if s == "" {
		return "", ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], s[size:]
}

// Casers carry state, so each call gets its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }
