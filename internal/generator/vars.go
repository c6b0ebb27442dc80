package generator

import (
	"fmt"
	"strings"

	"github.com/conneroisu/stencil/internal/errors"
)

// ParseVarOverrides turns KEY=VALUE entries into a map. Malformed entries
// are reported to warn and dropped; a repeated key keeps its last value.
func ParseVarOverrides(entries []string, warn errors.WarningSink) map[string]string {
	if warn == nil {
		warn = errors.DiscardWarnings
	}

	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			warn.Warn(errors.Warning{
				Code:    errors.WarnMalformedVar,
				Subject: entry,
				Message: fmt.Sprintf("ignoring variable %q, expected KEY=VALUE", entry),
			})
			continue
		}
		vars[key] = strings.TrimSpace(value)
	}
	return vars
}
