// Package naming converts base names between case styles and derives the
// hook, context, provider and page names used by generated files.
package naming

import (
	"strings"
	"unicode"
)

// Words splits s into words. Runs of non-alphanumeric runes are dropped and
// act as boundaries, as do case humps ("userID" -> user, ID; "HTTPServer" ->
// HTTP, Server; "v2Api" -> v2, Api).
func Words(s string) []string {
	runes := []rune(s)
	words := make([]string, 0, 4)
	start := -1

	for i, r := range runes {
		if !isAlnum(r) {
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) && isBoundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}

	return words
}

func isBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// End of an acronym: "HTTPServer" splits before the S.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isAlnumOnly(s string) bool {
	for _, r := range s {
		if !isAlnum(r) {
			return false
		}
	}
	return true
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ToPascalCase converts s to PascalCase. Input that already starts with an
// upper-case letter and contains no separators is returned unchanged.
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	if unicode.IsUpper(firstRune(s)) && isAlnumOnly(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, w := range Words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToCamelCase converts s to camelCase. Input that already starts with a
// lower-case letter and contains no separators is returned unchanged.
func ToCamelCase(s string) string {
	if s == "" {
		return ""
	}
	if unicode.IsLower(firstRune(s)) && isAlnumOnly(s) {
		return s
	}

	words := Words(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToSnakeCase converts s to snake_case.
func ToSnakeCase(s string) string {
	return joinLower(Words(s), "_")
}

// ToKebabCase converts s to kebab-case.
func ToKebabCase(s string) string {
	return joinLower(Words(s), "-")
}

func joinLower(words []string, sep string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}

// Forms returns every case form of name keyed by its render-context field.
func Forms(name string) map[string]string {
	return map[string]string{
		"pascal_name": ToPascalCase(name),
		"camel_name":  ToCamelCase(name),
		"snake_name":  ToSnakeCase(name),
		"kebab_name":  ToKebabCase(name),
		"upper_name":  strings.ToUpper(name),
	}
}
