package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "yaml config", path: "config.yaml", expected: "yaml"},
		{name: "uppercase extension", path: "CONFIG.JSON", expected: "json"},
		{name: "multiple dots", path: "page.amp.html", expected: "html"},
		{name: "no extension", path: "README", expected: ""},
		{name: "nested path", path: "/etc/amp/sanitizer.yml", expected: "yml"},
		{name: "empty string", path: "", expected: ""},
		{name: "trailing dot", path: "file.", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutil.GetFileExtension(tt.path))
		})
	}
}

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()

	err := fileutil.EnsureDir(base, "out", "amp")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(base, "out", "amp"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_FailsOnFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := fileutil.EnsureDir(blocker, "child")
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>file</p>"), 0644))

	fromFile, err := fileutil.ReadInput(path, nil)
	require.Nil(t, err)
	assert.Equal(t, "<p>file</p>", string(fromFile))

	fromStdin, err := fileutil.ReadInput("-", strings.NewReader("<p>stdin</p>"))
	require.Nil(t, err)
	assert.Equal(t, "<p>stdin</p>", string(fromStdin))

	_, err = fileutil.ReadInput(filepath.Join(t.TempDir(), "missing.html"), nil)
	require.NotNil(t, err)
	var fileErr *fileutil.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, fileutil.ErrCauseReadError, fileErr.Cause)

	_, err = fileutil.ReadInput("", nil)
	assert.NotNil(t, err)
}
