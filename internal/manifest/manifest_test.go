package manifest

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/stencil/internal/errors"
)

const componentConf = `# Component template
[metadata]
name = React Component
description = "A functional component" # trailing comment
name = Ignored Duplicate

[options]
style = scss
style_options = scss, css, styled-components
style_description = Styling approach
with_tests = true
with_tests_type = boolean
with_tests_description = 'Generate a test file'
title = "Hello # world"

[files]
$FILE_NAME.module.scss = var_style_scss
$FILE_NAME.test.tsx = var_with_tests
stories/$FILE_NAME.stories.tsx = always

[unknown]
anything goes here
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(componentConf))
	require.NoError(t, err)

	assert.Equal(t, Metadata{Name: "React Component", Description: "A functional component"}, m.Metadata)

	assert.Equal(t, map[string]string{
		"style":      "scss",
		"with_tests": "true",
		"title":      "Hello # world",
	}, m.Variables)

	require.Contains(t, m.Options, "style")
	assert.Equal(t, KindEnum, m.Options["style"].Kind)
	assert.Equal(t, []string{"scss", "css", "styled-components"}, m.Options["style"].AllowedValues)
	assert.Equal(t, "Styling approach", m.Options["style"].Description)
	assert.True(t, m.Options["style"].Allows("css"))
	assert.False(t, m.Options["style"].Allows("less"))

	require.Contains(t, m.Options, "with_tests")
	assert.Equal(t, KindBoolean, m.Options["with_tests"].Kind)
	assert.Equal(t, "Generate a test file", m.Options["with_tests"].Description)

	assert.Equal(t, map[string]string{
		"$FILE_NAME.module.scss":         "var_style_scss",
		"$FILE_NAME.test.tsx":            "var_with_tests",
		"stories/$FILE_NAME.stories.tsx": "always",
	}, m.FileRules)

	assert.True(t, m.EnableTimestamps)
	assert.True(t, m.EnableUUID)
	assert.Empty(t, m.Warnings)
	assert.Equal(t, []string{"style", "title", "with_tests"}, m.VariableNames())
}

func TestParseLegacyRootKeys(t *testing.T) {
	m, err := Parse(strings.NewReader(`
environment = production
enable_timestamps = false
enable_uuid = not-a-bool
var_author = "Jane"
ignored_line_without_equals
`))
	require.NoError(t, err)

	assert.Equal(t, "production", m.Environment)
	assert.False(t, m.EnableTimestamps)
	assert.True(t, m.EnableUUID)
	assert.Equal(t, map[string]string{"author": "Jane"}, m.Variables)
}

func TestParseTypeBeforeOptions(t *testing.T) {
	m, err := Parse(strings.NewReader(`
[options]
size_type = enum
size_options = sm,md,lg
flag_type = bool
count_type = number
`))
	require.NoError(t, err)

	assert.Equal(t, KindEnum, m.Options["size"].Kind)
	assert.Equal(t, KindBoolean, m.Options["flag"].Kind)
	assert.Equal(t, KindString, m.Options["count"].Kind)
	require.Len(t, m.Warnings, 1)
	assert.Equal(t, errors.WarnUnknownOptionType, m.Warnings[0].Code)
	assert.Equal(t, "count", m.Warnings[0].Subject)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"unterminated section", "[metadata]\nname = x\n[files\n", 3},
		{"missing equals in known section", "[files]\n$FILE_NAME.tsx\n", 2},
		{"empty key", "[options]\n = value\n", 2},
		{"empty enum list", "[options]\nstyle_options = , ,\n", 2},
		{"enum type without values", "[options]\nstyle_type = enum\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsMalformedConfig(err))

			var se *errors.StencilError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
		})
	}
}

func TestParseNormalizesBackslashRules(t *testing.T) {
	m, err := Parse(strings.NewReader("[files]\nsub\\$FILE_NAME.test.tsx = var_with_tests\nstories/x.tsx = always\n"))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"sub/$FILE_NAME.test.tsx": "var_with_tests",
		"stories/x.tsx":           "always",
	}, m.FileRules)
}

func TestMerge(t *testing.T) {
	m := New()
	m.Variables["style"] = "scss"
	m.Variables["with_tests"] = "true"

	merged := m.Merge(map[string]string{"style": "css", "extra": "1"})

	assert.Equal(t, map[string]string{"style": "css", "with_tests": "true", "extra": "1"}, merged)
	assert.Equal(t, "scss", m.Variables["style"])
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("missing manifest yields empty", func(t *testing.T) {
		require.NoError(t, fs.MkdirAll("templates/hook", 0o755))
		m, err := Load(fs, "templates/hook")
		require.NoError(t, err)
		assert.Empty(t, m.Variables)
		assert.Empty(t, m.FileRules)
		assert.True(t, m.EnableTimestamps)
	})

	t.Run("reads manifest", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "templates/component/.conf", []byte(componentConf), 0o644))
		m, err := Load(fs, "templates/component")
		require.NoError(t, err)
		assert.Equal(t, "React Component", m.Metadata.Name)
	})

	t.Run("malformed manifest reports path", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "templates/bad/.conf", []byte("[files\n"), 0o644))
		_, err := Load(fs, "templates/bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "templates/bad/.conf:1")
	})
}
