package naming

import "strings"

// Sentinel is the literal placeholder substituted before markup rendering.
const Sentinel = "$FILE_NAME"

// NamePlaceholder is the token used by architecture filename patterns.
const NamePlaceholder = "{name}"

type replacement struct {
	old, new string
}

// Specific forms must be replaced before the generic token.
func sentinelPairs(token string, set NameSet, fallback string) []replacement {
	return []replacement{
		{"use" + token, set.Hook},
		{token + "Context", set.Context},
		{token + "Provider", set.Provider},
		{token + "Page", set.Page},
		{token, fallback},
	}
}

func replaceAll(s string, pairs []replacement) string {
	for _, p := range pairs {
		if strings.Contains(s, p.old) {
			s = strings.ReplaceAll(s, p.old, p.new)
		}
	}
	return s
}

// ReplaceSentinels substitutes $FILE_NAME tokens in template content. The bare
// token becomes the raw base name.
func ReplaceSentinels(content string, set NameSet) string {
	return replaceAll(content, sentinelPairs(Sentinel, set, set.Base))
}

// ReplaceFilenameSentinels substitutes $FILE_NAME tokens in an output file
// name. The bare token becomes the PascalCase base name.
func ReplaceFilenameSentinels(filename string, set NameSet) string {
	return replaceAll(filename, sentinelPairs(Sentinel, set, ToPascalCase(set.Base)))
}

// ExpandPattern substitutes {name} tokens in an architecture filename pattern.
func ExpandPattern(pattern string, set NameSet) string {
	return replaceAll(pattern, sentinelPairs(NamePlaceholder, set, set.Base))
}
