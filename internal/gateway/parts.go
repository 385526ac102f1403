package gateway

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"google.golang.org/genai"
)

// sourceParts renders each source as request parts. File sources become an
// inline payload followed by a label, text sources a single labelled part.
// Labels carry the category so the model can attribute what it finds.
func sourceParts(sources []models.StudySource) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(sources)*2)
	for _, s := range sources {
		if s.Kind == models.KindFile {
			data, err := base64.StdEncoding.DecodeString(s.Base64Data())
			if err != nil {
				return nil, fmt.Errorf("source %s: bad file payload: %w", s.FileName, err)
			}
			parts = append(parts,
				&genai.Part{InlineData: &genai.Blob{MIMEType: s.MimeType, Data: data}},
				genai.NewPartFromText(fmt.Sprintf("The part above is the %s (%s) [%s].", s.Title, s.FileName, s.Category)),
			)
			continue
		}
		parts = append(parts, genai.NewPartFromText(fmt.Sprintf("Content of %s (%s) [%s]:\n%s", s.Title, s.FileName, s.Category, s.Content)))
	}
	return parts, nil
}

// sourceIndex lists the sources for the instruction text.
func sourceIndex(sources []models.StudySource) string {
	var b strings.Builder
	for _, s := range sources {
		fmt.Fprintf(&b, "- %s (File: %s, Type: %s, Category: %s)\n", s.Title, s.FileName, s.MimeType, s.Category.Title())
	}
	return b.String()
}

// responseText joins the text parts of the first candidate, skipping
// thought summaries.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
