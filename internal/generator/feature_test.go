package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/naming"
	"github.com/conneroisu/stencil/internal/testutils"
)

const featureSliced = `{
	"name": "feature-sliced",
	"description": "Feature folders split by concern",
	"structure": [
		{"path": "components", "template": "component"},
		{"path": "hooks", "template": "hook", "filename_pattern": "use{name}"},
		{"path": "api", "template": "service", "filename_pattern": "{name}Api.ts"}
	]
}`

func featureFixture(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, "templates/component", componentFiles)
	testutils.WriteFiles(t, fs, "templates/hook", map[string]string{
		"$FILE_NAME.ts": "export function {{.hook_name}}() {}\n",
	})
	testutils.WriteFiles(t, fs, "templates/service", map[string]string{
		"index.ts": "export const {{.camel_name}}Api = {};\n",
	})
	testutils.WriteFiles(t, fs, "architectures", map[string]string{
		"feature-sliced.json": featureSliced,
		"default.yaml": `name: default
structure:
  - path: ui
    template: component
`,
	})
	return fs
}

func TestGenerateFeature(t *testing.T) {
	fs := featureFixture(t)
	gen := newTestGenerator(t, fs, nil)
	store := manifest.NewArchitectureStore(fs, "architectures")

	report, err := gen.GenerateFeature(context.Background(), FeatureRequest{
		Name:         "cart",
		Architecture: "feature-sliced",
		CreateFolder: true,
	}, store)
	require.NoError(t, err)

	assert.Equal(t, "feature-sliced", report.Architecture.Name)
	assert.Equal(t, filepath.Join("out", "cart"), report.OutputDir)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, "components", report.Entries[0].Entry.Path)
	assert.Equal(t, "hooks", report.Entries[1].Entry.Path)
	assert.Equal(t, "api", report.Entries[2].Entry.Path)

	assert.Equal(t, []string{
		"api/cartApi.ts",
		"components/Cart.module.scss",
		"components/Cart.styled.ts",
		"components/Cart.test.tsx",
		"components/Cart.tsx",
		"components/index.ts",
		"components/stories/Cart.stories.tsx",
		"hooks/useCart.ts",
	}, report.Files)

	assert.Equal(t, "export function useCart() {}\n", testutils.ReadFile(t, fs, "out/cart/hooks/useCart.ts"))
	assert.Equal(t, "export const cartApi = {};\n", testutils.ReadFile(t, fs, "out/cart/api/cartApi.ts"))
}

func TestGenerateFeatureFallsBackToDefault(t *testing.T) {
	fs := featureFixture(t)
	gen := newTestGenerator(t, fs, nil)
	store := manifest.NewArchitectureStore(fs, "architectures")

	report, err := gen.GenerateFeature(context.Background(), FeatureRequest{
		Name:         "profile",
		Architecture: "hexagonal",
	}, store)
	require.NoError(t, err)

	assert.Equal(t, manifest.DefaultArchitecture, report.Architecture.Name)
	assert.Contains(t, report.Files, "ui/Profile.tsx")
}

func TestGenerateFeatureMissingPartial(t *testing.T) {
	fs := featureFixture(t)
	require.NoError(t, afero.WriteFile(fs, "architectures/broken.json", []byte(`{
		"structure": [
			{"path": "components", "template": "component"},
			{"path": "widgets", "template": "widget"},
			{"path": "hooks", "template": "hook"}
		]
	}`), 0o644))
	gen := newTestGenerator(t, fs, nil)
	store := manifest.NewArchitectureStore(fs, "architectures")

	report, err := gen.GenerateFeature(context.Background(), FeatureRequest{
		Name:         "cart",
		Architecture: "broken",
	}, store)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	require.NotNil(t, report)
	assert.Len(t, report.Entries, 1)
	assert.Equal(t, "export * from './cart';\n", testutils.ReadFile(t, fs, "out/components/index.ts"))

	exists, err := afero.DirExists(fs, "out/hooks")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateFeatureWithoutProvider(t *testing.T) {
	gen := newTestGenerator(t, afero.NewMemMapFs(), nil)

	_, err := gen.GenerateFeature(context.Background(), FeatureRequest{Name: "cart"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, errors.TypeOf(err))
}

func TestGenerateFeatureUnknownArchitectureWithoutDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	gen := newTestGenerator(t, fs, nil)

	_, err := gen.GenerateFeature(context.Background(), FeatureRequest{
		Name:         "cart",
		Architecture: "layered",
	}, manifest.NewArchitectureStore(fs, "architectures"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPatternName(t *testing.T) {
	names := naming.Derive("userProfile")
	tests := []struct {
		pattern string
		rel     string
		want    string
	}{
		{"use{name}", "hook.ts", "useUserProfile.ts"},
		{"{name}Context.tsx", "context.tsx", "UserProfileContext.tsx"},
		{"{name}.service", "index.ts", "userProfile.service"},
		{"api/{name}Client", "client.go", filepath.FromSlash("api/userProfileClient.go")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, patternName(tt.pattern, tt.rel, names), tt.pattern)
	}
}
