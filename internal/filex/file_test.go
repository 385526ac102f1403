package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUpload(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("mitosis"), 0o600))

	up, err := ReadUpload(txt, MaxUploadBytes)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", up.Name)
	assert.Equal(t, "text/plain", up.MimeType)
	assert.Equal(t, []byte("mitosis"), up.Data)
}

func TestReadUpload_SniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "scan.bin9")
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.7\n..."), 0o600))

	up, err := ReadUpload(p, MaxUploadBytes)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", up.MimeType)
}

func TestReadUpload_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadUpload(filepath.Join(dir, "missing.txt"), MaxUploadBytes)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadUpload(dir, MaxUploadBytes)
	require.Error(t, err)

	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, []byte("0123456789"), 0o600))
	_, err = ReadUpload(big, 5)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType("a.PDF", nil))
	assert.Equal(t, "image/png", DetectMimeType("a.png", nil))
	assert.Equal(t, "text/plain", DetectMimeType("noext", []byte("hello")))
}

func TestEnsureParentDir(t *testing.T) {
	tmp := t.TempDir()
	db := filepath.Join(tmp, "data", "oracle.db")

	require.NoError(t, EnsureParentDir(db))
	require.NoError(t, EnsureParentDir(db))

	fi, err := os.Stat(filepath.Join(tmp, "data"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureParentDir_FailsIfFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data"), []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(tmp, "data", "oracle.db")))
}
