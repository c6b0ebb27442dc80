package errors

import (
	"sort"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
}

// NotFoundSuggestions builds hints for a missing template or architecture.
// kind is "template" or "architecture"; available is the discovered set.
func NotFoundSuggestions(kind, requested string, available []string) []ErrorSuggestion {
	var suggestions []ErrorSuggestion

	if similar := closestMatch(requested, available); similar != "" {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Did you mean '" + similar + "'?",
			Description: "A " + kind + " with a similar name exists",
		})
	}

	if len(available) > 0 {
		sorted := append([]string(nil), available...)
		sort.Strings(sorted)
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Available " + kind + "s",
			Description: strings.Join(sorted, ", "),
			Command:     "stencil list",
		})
	} else {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "No " + kind + "s found",
			Description: "Check the " + kind + "s directory in .stencil.yml",
		})
	}

	return suggestions
}

// FormatSuggestions renders suggestions as indented lines.
func FormatSuggestions(suggestions []ErrorSuggestion) string {
	var b strings.Builder
	for _, s := range suggestions {
		b.WriteString("  • ")
		b.WriteString(s.Title)
		if s.Description != "" {
			b.WriteString(": ")
			b.WriteString(s.Description)
		}
		if s.Command != "" {
			b.WriteString(" (run: ")
			b.WriteString(s.Command)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// closestMatch picks the candidate with the smallest edit distance, as long
// as it is close enough to be a plausible typo.
func closestMatch(requested string, candidates []string) string {
	req := strings.ToLower(requested)
	best := ""
	bestDist := -1
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == req {
			continue
		}
		if strings.Contains(lc, req) || strings.Contains(req, lc) {
			return c
		}
		d := levenshtein(req, lc)
		if bestDist == -1 || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	limit := len(req) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist >= 0 && bestDist <= limit {
		return best
	}
	return ""
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
