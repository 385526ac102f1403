package models

import (
	"fmt"
	"strings"
)

// Category is one of the three fixed source buckets.
type Category string

const (
	CategorySyllabus Category = "syllabus"
	CategoryNotes    Category = "notes"
	CategoryTextbook Category = "textbook"
)

// Categories lists the buckets in display order.
var Categories = []Category{CategorySyllabus, CategoryNotes, CategoryTextbook}

// ParseCategory accepts a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (want syllabus, notes or textbook)", s)
}

// Title is the human label used when attributing findings to a source.
func (c Category) Title() string {
	switch c {
	case CategorySyllabus:
		return "Syllabus"
	case CategoryNotes:
		return "Lecture Notes"
	case CategoryTextbook:
		return "Textbook"
	default:
		return string(c)
	}
}

// SourceKind tells how Content is encoded.
type SourceKind string

const (
	// KindText sources hold literal text.
	KindText SourceKind = "text"
	// KindFile sources hold a base64 data URL (images, PDF).
	KindFile SourceKind = "file"
)

// StudySource is an uploaded document. It lives in memory only.
type StudySource struct {
	ID       string     `json:"id"`
	Category Category   `json:"category"`
	Title    string     `json:"title"`
	Kind     SourceKind `json:"type"`
	MimeType string     `json:"mimeType"`
	Content  string     `json:"content"`
	FileName string     `json:"fileName"`
}

// Base64Data returns the payload of a file source without the data URL prefix.
func (s StudySource) Base64Data() string {
	if _, data, found := strings.Cut(s.Content, ","); found {
		return data
	}
	return s.Content
}
