package workspace

import (
	"testing"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mime     string
		kind     models.SourceKind
		wantMime string
		wantErr  bool
	}{
		{"png", "board.png", "image/png", models.KindFile, "image/png", false},
		{"pdf by mime", "chapter", "application/pdf", models.KindFile, "application/pdf", false},
		{"pdf by extension", "Chapter.PDF", "application/octet-stream", models.KindFile, "application/pdf", false},
		{"text mime", "notes", "text/markdown", models.KindText, "text/plain", false},
		{"txt extension", "notes.txt", "", models.KindText, "text/plain", false},
		{"md extension", "notes.md", "application/octet-stream", models.KindText, "text/plain", false},
		{"docx", "essay.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "", "", true},
		{"no hints", "blob", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, mime, err := DetectKind(tt.fileName, tt.mime)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFile)
				assert.Contains(t, err.Error(), tt.fileName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.wantMime, mime)
		})
	}
}

func TestAddFile(t *testing.T) {
	w := New()

	img, err := w.AddFile(models.CategoryNotes, "board.png", "image/png", []byte("ABC"))
	require.NoError(t, err)
	assert.Equal(t, models.KindFile, img.Kind)
	assert.Equal(t, "data:image/png;base64,QUJD", img.Content)
	assert.Equal(t, "QUJD", img.Base64Data())
	assert.Equal(t, "Lecture Notes", img.Title)

	txt, err := w.AddFile(models.CategorySyllabus, "syllabus.md", "", []byte("# Week 1"))
	require.NoError(t, err)
	assert.Equal(t, models.KindText, txt.Kind)
	assert.Equal(t, "# Week 1", txt.Content)

	_, err = w.AddFile(models.CategoryTextbook, "slides.pptx", "", []byte("x"))
	require.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = w.AddFile(models.Category("slides"), "a.txt", "", []byte("x"))
	require.Error(t, err)

	assert.Len(t, w.Sources(), 2)
}

func TestReadiness(t *testing.T) {
	w := New()
	assert.False(t, w.Ready())

	a, err := w.AddText(models.CategorySyllabus, "", "week 1: cells")
	require.NoError(t, err)
	_, err = w.AddText(models.CategorySyllabus, "Extra", "week 2: tissues")
	require.NoError(t, err)
	assert.False(t, w.Ready(), "two sources in one category are not enough")

	_, err = w.AddText(models.CategoryTextbook, "", "chapter 3")
	require.NoError(t, err)
	assert.True(t, w.Ready())
	assert.Equal(t, 2, w.FilledCategories())

	assert.True(t, w.Remove(models.CategorySyllabus, a.ID))
	assert.False(t, w.Remove(models.CategorySyllabus, a.ID))
	assert.True(t, w.Ready())

	w.Reset()
	assert.False(t, w.Ready())
	assert.Empty(t, w.Sources())
}

func TestSources_CategoryOrder(t *testing.T) {
	w := New()
	_, _ = w.AddText(models.CategoryTextbook, "T", "t")
	_, _ = w.AddText(models.CategorySyllabus, "S", "s")
	_, _ = w.AddText(models.CategoryNotes, "N", "n")

	var titles []string
	for _, s := range w.Sources() {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"S", "N", "T"}, titles)
	assert.Len(t, w.ByCategory(models.CategoryNotes), 1)
}

func TestAddText_Empty(t *testing.T) {
	_, err := New().AddText(models.CategoryNotes, "", "   ")
	require.Error(t, err)
}
