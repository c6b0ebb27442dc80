package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/render"
	"github.com/conneroisu/stencil/internal/testutils"
)

const componentManifest = `[metadata]
name = React Component
description = Functional component with optional extras

[options]
style = scss
style_options = scss,css,styled-components
with_tests = false
with_tests_type = boolean

[files]
$FILE_NAME.module.scss = var_style_scss
$FILE_NAME.styled.ts = var_style_styled_components
$FILE_NAME.test.tsx = var_with_tests
stories/$FILE_NAME.stories.tsx = always
`

var componentFiles = map[string]string{
	".conf":                          componentManifest,
	"$FILE_NAME.tsx":                 "import styles from './$FILE_NAME.module.scss';\nexport const {{.pascal_name}} = () => null;\n{{if .style_is_scss}}// scss{{end}}\n",
	"$FILE_NAME.module.scss":         ".{{.kebab_name}} {}\n",
	"$FILE_NAME.styled.ts":           "export const Wrapper = styled.div``;\n",
	"$FILE_NAME.test.tsx":            "describe('{{.pascal_name}}', () => {});\n",
	"index.ts":                       "export * from './$FILE_NAME';\n",
	"stories/$FILE_NAME.stories.tsx": "export default { title: '{{.pascal_name}}' };\n",
}

func newTestGenerator(t *testing.T, fs afero.Fs, warnings errors.WarningSink) *Generator {
	t.Helper()
	return New(Options{
		TemplatesDir: "templates",
		OutputDir:    "out",
		Workers:      4,
		Fs:           fs,
		Warnings:     warnings,
		Now:          testutils.FixedNow,
		NewUUID:      testutils.FixedUUID,
	})
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", componentFiles)
	gen := newTestGenerator(t, fs, errors.NewWarningCollector())

	report, err := gen.Generate(context.Background(), Request{
		Name:         "user",
		TemplateType: "component",
		CreateFolder: true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "user"), report.OutputDir)
	assert.Equal(t, []string{"User.module.scss", "User.tsx", "index.ts", "stories"}, report.Files)
	assert.ElementsMatch(t, []string{"$FILE_NAME.styled.ts", "$FILE_NAME.test.tsx"}, report.Excluded)
	assert.Len(t, report.Batch.ByStatus(StatusWritten), 4)

	assert.Equal(t,
		"import styles from './user.module.scss';\nexport const User = () => null;\n// scss\n",
		testutils.ReadFile(t, fs, "out/user/User.tsx"))
	assert.Equal(t, ".user {}\n", testutils.ReadFile(t, fs, "out/user/User.module.scss"))
	assert.Equal(t, "export * from './user';\n", testutils.ReadFile(t, fs, "out/user/index.ts"))
	assert.Equal(t, "export default { title: 'User' };\n", testutils.ReadFile(t, fs, "out/user/stories/User.stories.tsx"))

	exists, err := afero.Exists(fs, "out/user/.conf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateWithOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", componentFiles)
	gen := newTestGenerator(t, fs, nil)

	report, err := gen.Generate(context.Background(), Request{
		Name:         "Button",
		TemplateType: "component",
		Variables:    map[string]string{"style": "styled-components", "with_tests": "yes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "out", report.OutputDir)
	assert.Equal(t, []string{"Button.styled.ts", "Button.test.tsx", "Button.tsx", "index.ts", "stories"}, report.Files)
	assert.Equal(t, []string{"$FILE_NAME.module.scss"}, report.Excluded)
	assert.NotContains(t, testutils.ReadFile(t, fs, "out/Button.tsx"), "// scss")
}

func TestGenerateTemplateNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	gen := newTestGenerator(t, fs, nil)

	_, err := gen.Generate(context.Background(), Request{Name: "user", TemplateType: "widget"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), filepath.Join("templates", "widget"))
}

func TestGenerateInvalidName(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", componentFiles)
	gen := newTestGenerator(t, fs, nil)

	for _, name := range []string{"", "  ", "../escape", "a/b", "..", "a{{uuid}}", `{{env "HOME"}}`} {
		_, err := gen.Generate(context.Background(), Request{Name: name, TemplateType: "component"})
		require.Error(t, err, name)
		assert.Equal(t, errors.ErrorTypeValidation, errors.TypeOf(err), name)
	}
}

func TestGenerateMalformedManifestWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/broken", map[string]string{
		".conf":          "[files\n",
		"$FILE_NAME.tsx": "x",
	})
	gen := newTestGenerator(t, fs, nil)

	_, err := gen.Generate(context.Background(), Request{Name: "user", TemplateType: "broken", CreateFolder: true})
	require.Error(t, err)
	assert.True(t, errors.IsMalformedConfig(err))

	exists, err := afero.DirExists(fs, "out/user")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateFailureKeepsPartialOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/partial", map[string]string{
		"a.txt": "first {{.name}}",
		"b.txt": "broken {{.missing_variable}}",
		"c.txt": "never {{.name}}",
	})
	gen := New(Options{TemplatesDir: "templates", OutputDir: "out", Workers: 1, Fs: fs})

	report, err := gen.Generate(context.Background(), Request{Name: "user", TemplateType: "partial"})
	require.Error(t, err)
	assert.True(t, errors.IsRendering(err))
	require.NotNil(t, report)

	statuses := map[string]Status{}
	for _, o := range report.Batch.Outcomes {
		statuses[o.Job.Rel] = o.Status
	}
	assert.Equal(t, map[string]Status{
		"a.txt": StatusWritten,
		"b.txt": StatusFailed,
		"c.txt": StatusSkipped,
	}, statuses)

	// No rollback: the file written before the failure stays.
	assert.Equal(t, "first user", testutils.ReadFile(t, fs, "out/a.txt"))
	for _, missing := range []string{"out/b.txt", "out/c.txt"} {
		exists, err := afero.Exists(fs, missing)
		require.NoError(t, err)
		assert.False(t, exists, missing)
	}
	assert.Equal(t, []string{"a.txt"}, report.Files)
}

func TestGenerateDeterministicFileSet(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", componentFiles)

	var previous []string
	for i := 0; i < 5; i++ {
		gen := New(Options{TemplatesDir: "templates", OutputDir: filepath.Join("runs", string(rune('a'+i))), Workers: 8, Fs: fs})
		report, err := gen.Generate(context.Background(), Request{
			Name:         "cart",
			TemplateType: "component",
			Variables:    map[string]string{"with_tests": "true"},
		})
		require.NoError(t, err)
		if previous != nil {
			assert.Equal(t, previous, report.Files)
		}
		previous = report.Files
	}
}

func TestGenerateSharesTimestampAndUUIDAcrossFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/stamp", map[string]string{
		"one.txt":   "{{.uuid}} {{.timestamp}}",
		"two.txt":   "{{.uuid}} {{.timestamp}}",
		"three.txt": "{{.uuid}} {{.timestamp}}",
	})
	gen := New(Options{TemplatesDir: "templates", OutputDir: "out", Fs: fs})

	_, err := gen.Generate(context.Background(), Request{Name: "x", TemplateType: "stamp"})
	require.NoError(t, err)

	one := testutils.ReadFile(t, fs, "out/one.txt")
	assert.NotEqual(t, " ", one)
	assert.Equal(t, one, testutils.ReadFile(t, fs, "out/two.txt"))
	assert.Equal(t, one, testutils.ReadFile(t, fs, "out/three.txt"))
}

func TestGenerateWarnings(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/warn", map[string]string{
		".conf":     "[files]\nmaybe.txt = sometimes\n",
		"maybe.txt": "x",
		"hook.ts":   "{{.hook_name}}",
	})
	collector := errors.NewWarningCollector()
	gen := newTestGenerator(t, fs, collector)

	report, err := gen.Generate(context.Background(), Request{
		Name:         "auth",
		TemplateType: "warn",
		Variables:    map[string]string{"hook_name": "useOverride"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hook.ts"}, report.Files)
	assert.Equal(t, "useAuth", testutils.ReadFile(t, fs, "out/hook.ts"))
	assert.Len(t, collector.ByCode(errors.WarnUnknownCondition), 1)
	assert.Len(t, collector.ByCode(errors.WarnReservedVariable), 1)
}

func TestGenerateUndefaultedOptionRendersEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/flagged", map[string]string{
		".conf":          "[options]\nwith_tests_type = boolean\n",
		"$FILE_NAME.ts":  "{{if .with_tests}}tests{{end}}ok\n",
		"$FILE_NAME.txt": "[{{.with_tests}}]\n",
	})
	gen := newTestGenerator(t, fs, nil)

	tests := []struct {
		name     string
		vars     map[string]string
		wantTS   string
		wantText string
	}{
		{name: "unset", wantTS: "ok\n", wantText: "[]\n"},
		{name: "overridden", vars: map[string]string{"with_tests": "true"}, wantTS: "testsok\n", wantText: "[true]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := gen.Generate(context.Background(), Request{
				Name:         "Badge",
				TemplateType: "flagged",
				CreateFolder: true,
				Variables:    tt.vars,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTS, testutils.ReadFile(t, fs, filepath.Join(report.OutputDir, "Badge.ts")))
			assert.Equal(t, tt.wantText, testutils.ReadFile(t, fs, filepath.Join(report.OutputDir, "Badge.txt")))
		})
	}
}

func TestGenerateUndeclaredVariableStillFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/strict", map[string]string{
		"$FILE_NAME.ts": "{{.never_declared}}\n",
	})
	gen := newTestGenerator(t, fs, nil)

	_, err := gen.Generate(context.Background(), Request{Name: "Badge", TemplateType: "strict"})
	require.Error(t, err)
	assert.True(t, errors.IsRendering(err))
}

func TestGenerateSkipsNestedManifests(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/nested", map[string]string{
		".conf":                  "[options]\nwith_tests = false\nwith_tests_type = boolean\n\n[files]\nsub\\$FILE_NAME.test.ts = var_with_tests\n",
		"sub/.conf":              "[metadata]\nname = nested\n",
		"sub/$FILE_NAME.ts":      "export const {{.camel_name}} = 1;\n",
		"sub/$FILE_NAME.test.ts": "test('{{.pascal_name}}', () => {});\n",
	})
	gen := newTestGenerator(t, fs, nil)

	report, err := gen.Generate(context.Background(), Request{Name: "badge", TemplateType: "nested", CreateFolder: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub/$FILE_NAME.test.ts"}, report.Excluded)
	assert.Len(t, report.Batch.Outcomes, 1)
	assert.Equal(t, "export const badge = 1;\n", testutils.ReadFile(t, fs, "out/badge/sub/Badge.ts"))

	exists, err := afero.Exists(fs, "out/badge/sub/.conf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateCopiesBinaryFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	binary := string([]byte{0x89, 'P', 'N', 'G', 0xff, 0xfe, '{', '{'})
	testutils.WriteFiles(t, fs, "templates/assets", map[string]string{"logo.png": binary})
	gen := newTestGenerator(t, fs, nil)

	_, err := gen.Generate(context.Background(), Request{Name: "x", TemplateType: "assets"})
	require.NoError(t, err)
	assert.Equal(t, binary, testutils.ReadFile(t, fs, "out/logo.png"))
}

func TestGenerateUsesInjectedEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/env", map[string]string{
		"config.ts": `export const env = "{{.environment}}"; export const api = "{{env "API_URL"}}";`,
	})
	env := render.EnvMap{"NODE_ENV": "test", "API_URL": "http://localhost:8080"}
	gen := New(Options{TemplatesDir: "templates", OutputDir: "out", Fs: fs, Env: env})

	_, err := gen.Generate(context.Background(), Request{Name: "x", TemplateType: "env"})
	require.NoError(t, err)
	assert.Equal(t, `export const env = "test"; export const api = "http://localhost:8080";`, testutils.ReadFile(t, fs, "out/config.ts"))
}

func TestTemplateExistsAndList(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", map[string]string{"a.txt": "a"})
	testutils.WriteFiles(t, fs, "templates/hook", map[string]string{"a.txt": "a"})
	testutils.WriteFiles(t, fs, "templates/.git", map[string]string{"HEAD": "ref"})
	require.NoError(t, afero.WriteFile(fs, "templates/README.md", []byte("docs"), 0o644))
	gen := newTestGenerator(t, fs, nil)

	assert.True(t, gen.TemplateExists("component"))
	assert.False(t, gen.TemplateExists("page"))
	assert.False(t, gen.TemplateExists("README.md"))
	assert.False(t, gen.TemplateExists("../templates"))
	assert.False(t, gen.TemplateExists(""))

	templates, err := gen.ListTemplates()
	require.NoError(t, err)
	assert.Equal(t, []string{"component", "hook"}, templates)

	empty, err := New(Options{TemplatesDir: "nowhere", Fs: fs}).ListTemplates()
	require.NoError(t, err)
	assert.Empty(t, empty)
}
