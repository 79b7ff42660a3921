package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_WritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	storage := &Storage{uploadDir: dir, baseURL: "http://files.example.com"}

	url, err := storage.Upload(context.Background(), []byte("receipt body"), "receipt.pdf", "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://files.example.com/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-receipt.pdf"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "receipt body", string(body))
}

func TestUpload_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	storage := &Storage{uploadDir: dir, baseURL: "http://files.example.com"}

	url, err := storage.Upload(context.Background(), []byte("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, "-passwd"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-passwd"))
}
