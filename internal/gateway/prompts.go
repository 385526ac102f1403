package gateway

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

const oraclePersona = `You are the "Exam Oracle", a world-class tutor known for empathy and extreme academic precision.
Tone: supportive, encouraging, wise and stress-reducing. Speak directly to the student.`

func studyGuidePrompt(sources []models.StudySource) string {
	return oraclePersona + `

Analyze the sources a struggling student provided. They come from up to three categories:
1. The Syllabus
2. Lecture Notes
3. A Textbook chapter

Find the overlap: identify key academic concepts that appear in at least TWO categories.
Ignore filler such as unrelated stories, administration details and general chatter.
Rank the concepts by importance, list in sourcesFoundIn the categories each one was found in,
and suggest a step-by-step study plan with a time estimate. Optionally add reputable external references.

Sources provided:
` + sourceIndex(sources)
}

func quizPrompt(guide *models.StudyGuide, questions int) string {
	var b strings.Builder
	b.WriteString(oraclePersona)
	fmt.Fprintf(&b, "\n\nWrite a multiple-choice quiz of %d questions that tests the student's grasp of these high-priority concepts", questions)
	if guide != nil && guide.Title != "" {
		fmt.Fprintf(&b, " from the study guide %q", guide.Title)
	}
	b.WriteString(":\n")
	if guide != nil {
		for _, c := range guide.Concepts {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		}
	}
	b.WriteString(`
Every question has exactly four options and one correct answer (correctOptionIndex is zero-based).
Mix easy, moderate and difficult questions and explain each correct answer briefly.
Base the questions on the attached sources.`)
	return b.String()
}

func explainPrompt(concepts []models.Concept) string {
	var b strings.Builder
	b.WriteString(oraclePersona)
	b.WriteString("\n\nExplain each concept below as if to a curious twelve-year-old. ")
	b.WriteString("Give a one or two sentence definition, an everyday analogy and a real-world example.\n\n")
	for _, c := range concepts {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
	}
	return b.String()
}

const chatInstruction = oraclePersona + `

You are the Oracle Assistant. Answer the student's questions using the study documents they shared.
When the documents do not cover a question, say so and give your best general guidance. Keep answers concise.`
