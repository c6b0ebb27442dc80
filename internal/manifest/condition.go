package manifest

import (
	"fmt"
	"strings"

	"github.com/conneroisu/stencil/internal/errors"
)

// ConditionKind tags the shape of a parsed file-inclusion condition.
type ConditionKind int

const (
	// Invalid conditions never match.
	Invalid ConditionKind = iota
	// Always matches unconditionally ("always", "default").
	Always
	// VariableTruthy matches when the variable is true, yes or 1.
	VariableTruthy
	// VariableEquals matches when the variable equals Value.
	VariableEquals
)

// String returns a short name for the kind.
func (k ConditionKind) String() string {
	switch k {
	case Always:
		return "always"
	case VariableTruthy:
		return "truthy"
	case VariableEquals:
		return "equals"
	default:
		return "invalid"
	}
}

// Condition is a parsed inclusion predicate.
type Condition struct {
	Kind  ConditionKind
	Name  string
	Value string
	Raw   string
}

const varPrefix = "var_"

// ParseCondition parses raw. known reports whether a name is a variable; an
// exact variable match ("var_with_tests" with a with_tests variable) takes
// priority over splitting at the first underscore ("var_style_scss").
func ParseCondition(raw string, known func(name string) bool) Condition {
	cond := Condition{Raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch strings.ToLower(trimmed) {
	case "always", "default":
		cond.Kind = Always
		return cond
	}

	rest, ok := strings.CutPrefix(trimmed, varPrefix)
	if !ok || rest == "" {
		return cond
	}

	if known != nil && known(rest) {
		cond.Kind = VariableTruthy
		cond.Name = rest
		return cond
	}

	name, value, found := strings.Cut(rest, "_")
	if !found || name == "" || value == "" {
		// Unresolved variable: evaluates false without a warning.
		cond.Kind = VariableTruthy
		cond.Name = rest
		return cond
	}

	cond.Kind = VariableEquals
	cond.Name = name
	cond.Value = value
	return cond
}

// Eval evaluates the condition against vars. It never panics.
func (c Condition) Eval(vars map[string]string) bool {
	switch c.Kind {
	case Always:
		return true
	case VariableTruthy:
		v, ok := vars[c.Name]
		return ok && IsTruthy(v)
	case VariableEquals:
		v, ok := vars[c.Name]
		if !ok {
			return false
		}
		return v == c.Value || v == strings.ReplaceAll(c.Value, "_", "-")
	default:
		return false
	}
}

// Warning describes why an invalid condition was skipped.
func (c Condition) Warning(file string) errors.Warning {
	return errors.Warning{
		Code:    errors.WarnUnknownCondition,
		Subject: file,
		Message: fmt.Sprintf("unknown file condition %q, skipping file", c.Raw),
	}
}

// String renders the condition for display.
func (c Condition) String() string {
	switch c.Kind {
	case Always:
		return "always"
	case VariableTruthy:
		return fmt.Sprintf("when %s is true", c.Name)
	case VariableEquals:
		return fmt.Sprintf("when %s = %s", c.Name, strings.ReplaceAll(c.Value, "_", "-"))
	default:
		return fmt.Sprintf("never (invalid condition %q)", c.Raw)
	}
}

// Evaluate parses and evaluates raw in one step.
func Evaluate(raw string, vars map[string]string) bool {
	return ParseCondition(raw, func(name string) bool {
		_, ok := vars[name]
		return ok
	}).Eval(vars)
}

// IsTruthy reports whether v reads as true (true, yes or 1, any case).
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// Rules resolves every file rule of m against vars. Invalid conditions are
// reported to warn and kept so the file is skipped.
func (m *Manifest) Rules(vars map[string]string, warn errors.WarningSink) map[string]Condition {
	known := func(name string) bool {
		_, ok := vars[name]
		return ok
	}
	rules := make(map[string]Condition, len(m.FileRules))
	for _, pattern := range sortedKeys(m.FileRules) {
		cond := ParseCondition(m.FileRules[pattern], known)
		if cond.Kind == Invalid && warn != nil {
			warn.Warn(cond.Warning(pattern))
		}
		rules[pattern] = cond
	}
	return rules
}
