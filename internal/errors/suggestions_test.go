package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundSuggestions(t *testing.T) {
	t.Run("suggests similar name", func(t *testing.T) {
		s := NotFoundSuggestions("template", "compnent", []string{"hook", "component", "page"})
		assert.Equal(t, "Did you mean 'component'?", s[0].Title)
		assert.Equal(t, "component, hook, page", s[1].Description)
	})

	t.Run("substring match", func(t *testing.T) {
		s := NotFoundSuggestions("architecture", "screaming", []string{"screaming-architecture"})
		assert.Equal(t, "Did you mean 'screaming-architecture'?", s[0].Title)
	})

	t.Run("nothing available", func(t *testing.T) {
		s := NotFoundSuggestions("template", "x", nil)
		assert.Len(t, s, 1)
		assert.Equal(t, "No templates found", s[0].Title)
	})

	t.Run("distant names are not suggested", func(t *testing.T) {
		s := NotFoundSuggestions("template", "zzzzzz", []string{"hook"})
		assert.Len(t, s, 1)
		assert.Equal(t, "Available templates", s[0].Title)
	})
}

func TestFormatSuggestions(t *testing.T) {
	out := FormatSuggestions([]ErrorSuggestion{{Title: "Available templates", Description: "hook", Command: "stencil list"}})
	assert.Equal(t, "  • Available templates: hook (run: stencil list)\n", out)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("hook", "hook"))
	assert.Equal(t, 1, levenshtein("hook", "hooks"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}
