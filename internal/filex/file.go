// Package filex reads local files offered for upload and prepares
// directories for the local database.
package filex

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes bounds a single upload; the model rejects bigger inline payloads.
const MaxUploadBytes = 20 << 20

var ErrTooLarge = errors.New("file too large")

// Upload is a file read from disk.
type Upload struct {
	Name     string
	MimeType string
	Data     []byte
}

// ReadUpload reads path, refusing files over limit bytes, and guesses the
// MIME type from the extension, falling back to content sniffing.
func ReadUpload(path string, limit int64) (*Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	name := filepath.Base(path)
	return &Upload{Name: name, MimeType: DetectMimeType(name, data), Data: data}, nil
}

// DetectMimeType returns the media type without parameters.
func DetectMimeType(name string, data []byte) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		t = http.DetectContentType(data)
	}
	if media, _, err := mime.ParseMediaType(t); err == nil {
		return media
	}
	return t
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
