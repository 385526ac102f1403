// Package workspace holds the study sources of the current session in
// memory, grouped by category. Sources are never persisted: Reset drops
// them on logout or when the student starts over.
package workspace

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/google/uuid"
)

// MinReadyCategories is how many categories need a source before a guide
// can be generated.
const MinReadyCategories = 2

// ErrUnsupportedFile is returned for uploads that are not an image, PDF or
// plain text.
var ErrUnsupportedFile = errors.New("unsupported file type (use PDF, images or text: .txt, .md)")

// DetectKind classifies an upload and returns the MIME type to send along
// with it.
func DetectKind(fileName, mimeType string) (models.SourceKind, string, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.KindFile, mimeType, nil
	case mimeType == "application/pdf" || ext == ".pdf":
		return models.KindFile, "application/pdf", nil
	case strings.HasPrefix(mimeType, "text/") || ext == ".txt" || ext == ".md":
		return models.KindText, "text/plain", nil
	}
	return "", "", fmt.Errorf("%s: %w", fileName, ErrUnsupportedFile)
}

// Workspace is safe for concurrent use.
type Workspace struct {
	mu      sync.Mutex
	sources map[models.Category][]models.StudySource
}

func New() *Workspace {
	return &Workspace{sources: make(map[models.Category][]models.StudySource)}
}

// AddFile stores an uploaded document under category. Images and PDFs are
// kept as a base64 data URL, text is kept as is.
func (w *Workspace) AddFile(category models.Category, fileName, mimeType string, data []byte) (*models.StudySource, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return nil, err
	}
	kind, mimeType, err := DetectKind(fileName, mimeType)
	if err != nil {
		return nil, err
	}

	src := models.StudySource{
		ID:       uuid.NewString(),
		Category: category,
		Title:    category.Title(),
		Kind:     kind,
		MimeType: mimeType,
		FileName: fileName,
	}
	if kind == models.KindFile {
		src.Content = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		src.Content = string(data)
	}

	w.add(src)
	return &src, nil
}

// AddText stores pasted text under category.
func (w *Workspace) AddText(category models.Category, title, text string) (*models.StudySource, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is empty")
	}
	if title == "" {
		title = category.Title()
	}

	src := models.StudySource{
		ID:       uuid.NewString(),
		Category: category,
		Title:    title,
		Kind:     models.KindText,
		MimeType: "text/plain",
		Content:  text,
		FileName: "pasted.txt",
	}
	w.add(src)
	return &src, nil
}

func (w *Workspace) add(src models.StudySource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sources[src.Category] = append(w.sources[src.Category], src)
}

// Remove drops the source with id from category and reports whether it existed.
func (w *Workspace) Remove(category models.Category, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	list := w.sources[category]
	for i, s := range list {
		if s.ID == id {
			w.sources[category] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Sources returns all sources, syllabus first, then notes, then textbook.
func (w *Workspace) Sources() []models.StudySource {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []models.StudySource
	for _, c := range models.Categories {
		out = append(out, w.sources[c]...)
	}
	return out
}

func (w *Workspace) ByCategory(category models.Category) []models.StudySource {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.StudySource(nil), w.sources[category]...)
}

// FilledCategories counts categories holding at least one source.
func (w *Workspace) FilledCategories() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for _, c := range models.Categories {
		if len(w.sources[c]) > 0 {
			n++
		}
	}
	return n
}

// Ready reports whether enough categories are filled to look for overlap.
func (w *Workspace) Ready() bool {
	return w.FilledCategories() >= MinReadyCategories
}

func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.sources)
}
