package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	WriteFiles(t, fs, "/root", map[string]string{
		"a.txt":         "a",
		"nested/b.txt":  "b",
		"nested/c/d.ts": "d",
	})

	assert.Equal(t, "a", ReadFile(t, fs, "/root/a.txt"))
	assert.Equal(t, "b", ReadFile(t, fs, filepath.Join("/root", "nested", "b.txt")))
	assert.Equal(t, "d", ReadFile(t, fs, filepath.Join("/root", "nested", "c", "d.ts")))
	AssertFileMode(t, fs, "/root/a.txt", 0o644)
}

func TestCreateTempProject(t *testing.T) {
	dir := CreateTempProject(t, map[string]string{"templates/hook/x.ts": "x"})

	data, err := os.ReadFile(filepath.Join(dir, "templates", "hook", "x.ts"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestFixedSources(t *testing.T) {
	assert.Equal(t, FixedTime, FixedNow())
	assert.Equal(t, FixedUUIDString, FixedUUID().String())
}

func TestWaitForFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("done"), 0o644)
	}()

	WaitForFileContent(t, path, "done", 2*time.Second)
}
