package naming

import (
	"strings"
	"unicode"
)

// NameSet holds the semantic names derived from one base name. It is computed
// once per run and only read afterwards.
type NameSet struct {
	Base     string
	Hook     string
	Context  string
	Provider string
	Page     string
}

// Derive computes the NameSet for name.
func Derive(name string) NameSet {
	return NameSet{
		Base:     name,
		Hook:     HookName(name),
		Context:  ContextName(name),
		Provider: ProviderName(name),
		Page:     PageName(name),
	}
}

// Fields returns the set keyed by render-context field.
func (n NameSet) Fields() map[string]string {
	return map[string]string{
		"hook_name":     n.Hook,
		"context_name":  n.Context,
		"provider_name": n.Provider,
		"page_name":     n.Page,
	}
}

// HookName returns name unchanged when it already reads as a hook ("useAuth",
// "use2FA"); otherwise it prefixes "use" to the PascalCase form.
func HookName(name string) string {
	if isHook(name) {
		return name
	}
	pascal := ToPascalCase(name)
	if pascal == "" {
		return ""
	}
	return "use" + pascal
}

func isHook(name string) bool {
	runes := []rune(name)
	if len(runes) < 4 || !strings.EqualFold(string(runes[:3]), "use") {
		return false
	}
	r := runes[3]
	return isAlnum(r) && !unicode.IsLower(r)
}

// ContextName returns name unchanged when it ends with "context", else the
// PascalCase form with a Context suffix.
func ContextName(name string) string {
	return withSuffix(name, "Context")
}

// PageName returns name unchanged when it ends with "page", else the
// PascalCase form with a Page suffix.
func PageName(name string) string {
	return withSuffix(name, "Page")
}

// ProviderName returns name unchanged when it ends with "provider". Otherwise
// a trailing "context" is dropped before "Provider" is appended, so
// "AuthContext" becomes "AuthProvider".
func ProviderName(name string) string {
	if name == "" || hasSuffixFold(name, "provider") {
		return name
	}
	pascal := ToPascalCase(name)
	if hasSuffixFold(name, "context") {
		if stripped := ToPascalCase(name[:len(name)-len("context")]); stripped != "" {
			pascal = stripped
		}
	}
	if pascal == "" {
		return ""
	}
	return pascal + "Provider"
}

func withSuffix(name, suffix string) string {
	if name == "" || hasSuffixFold(name, suffix) {
		return name
	}
	pascal := ToPascalCase(name)
	if pascal == "" {
		return ""
	}
	return pascal + suffix
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
