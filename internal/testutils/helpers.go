// Package testutils holds fixtures shared by the package tests: template
// trees on disk or in memory, a fixed clock and UUID, and file assertions.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// FixedTime is the instant returned by FixedNow.
var FixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// FixedUUIDString is the value returned by FixedUUID.
const FixedUUIDString = "123e4567-e89b-12d3-a456-426614174000"

// FixedNow is a clock frozen at FixedTime.
func FixedNow() time.Time {
	return FixedTime
}

// FixedUUID always returns the same UUID.
func FixedUUID() uuid.UUID {
	return uuid.MustParse(FixedUUIDString)
}

// WriteFiles writes files below root on fs. Keys are slash-separated paths
// relative to root.
func WriteFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

// CreateTempProject writes files into a fresh temporary directory on the OS
// file system and returns the directory.
func CreateTempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, afero.NewOsFs(), dir, files)
	return dir
}

// ReadFile returns the content of path on fs.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// AssertFileMode checks the permission bits of path on fs.
func AssertFileMode(t *testing.T, fs afero.Fs, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := fs.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode().Perm()
	require.Equal(t, expectedMode, actualMode,
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode, expectedMode)
}

// WaitForFileContent waits until path on the OS file system holds want,
// for testing file watchers.
func WaitForFileContent(t *testing.T, path, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	var last string
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil {
			last = string(data)
			if last == want {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("File %s did not reach the expected content within %v, last content %q", path, timeout, last)
}
