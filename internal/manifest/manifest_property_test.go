//go:build property
// +build property

package manifest

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConditionProperties tests evaluator totality and manifest parsing robustness
func TestConditionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: Evaluate returns for any input and never panics
	properties.Property("evaluate is total", prop.ForAll(
		func(condition, key, value string) bool {
			_ = Evaluate(condition, map[string]string{key: value})
			return true
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	// Property: A condition naming a variable exactly follows its truthiness
	properties.Property("exact variable follows truthiness", prop.ForAll(
		func(name string, truthy bool) bool {
			value := "false"
			if truthy {
				value = "true"
			}
			return Evaluate("var_"+name, map[string]string{name: value}) == truthy
		},
		gen.RegexMatch(`^[a-z][a-z0-9_]{0,12}$`),
		gen.Bool(),
	))

	// Property: Parsing arbitrary text either succeeds or fails cleanly
	properties.Property("parse never panics", prop.ForAll(
		func(content string) bool {
			m, err := Parse(strings.NewReader(content))
			return (m == nil) == (err != nil)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
