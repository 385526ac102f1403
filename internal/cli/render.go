package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

const barWidth = 20

// bar draws a percentage as a fixed-width gauge. Non-zero values get at
// least one cell so small scores stay visible.
func bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	if percent > 0 && filled == 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func renderGuide(w io.Writer, g *models.StudyGuide) {
	fmt.Fprintf(w, "\n== %s ==\n", g.Title)
	if g.OracleMessage != "" {
		fmt.Fprintf(w, "\"%s\"\n", g.OracleMessage)
	}
	fmt.Fprintf(w, "Estimated study time: %s\n", g.EstimatedStudyTime)
	fmt.Fprintf(w, "Progress: %s %d%% complete\n\n", bar(g.Progress()), g.Progress())

	fmt.Fprintln(w, "High-priority concepts:")
	for i, c := range g.Concepts {
		mark := " "
		if g.IsCompleted(c.Name) {
			mark = "x"
		}
		fmt.Fprintf(w, "%2d. [%s] %s  (focus score: %g)\n", i+1, mark, c.Name, c.FocusScore())
		fmt.Fprintf(w, "      %s\n", c.Description)
		if len(c.SourcesFoundIn) > 0 {
			fmt.Fprintf(w, "      found in: %s\n", strings.Join(c.SourcesFoundIn, ", "))
		}
		if c.PriorityReasoning != "" {
			fmt.Fprintf(w, "      why: %s\n", c.PriorityReasoning)
		}
		if c.Tips != "" {
			fmt.Fprintf(w, "      tip: %s\n", c.Tips)
		}
	}

	if len(g.StudyPlan) > 0 {
		fmt.Fprintln(w, "\nSuggested study plan:")
		for i, step := range g.StudyPlan {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
	if len(g.References) > 0 {
		fmt.Fprintln(w, "\nFurther reading:")
		for _, r := range g.References {
			fmt.Fprintf(w, "  - %s <%s>\n", r.Title, r.URL)
			if r.Description != "" {
				fmt.Fprintf(w, "    %s\n", r.Description)
			}
		}
	}
}

func renderExplanation(w io.Writer, e models.SimplifiedExplanation) {
	fmt.Fprintf(w, "\n* %s\n", e.ConceptName)
	fmt.Fprintf(w, "  In simple words: %s\n", e.SimpleDefinition)
	fmt.Fprintf(w, "  Think of it like: %s\n", e.Analogy)
	fmt.Fprintf(w, "  In real life: %s\n", e.RealWorldExample)
}

func renderQuestion(w io.Writer, idx, total int, q models.QuizQuestion, remaining int) {
	fmt.Fprintf(w, "\nQuestion %d of %d", idx+1, total)
	if q.Difficulty != "" {
		fmt.Fprintf(w, " [%s]", q.Difficulty)
	}
	if remaining > 0 {
		fmt.Fprintf(w, "  (%s left)", formatSeconds(remaining))
	}
	fmt.Fprintf(w, "\n%s\n", q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func renderAttempt(w io.Writer, a models.QuizAttempt) {
	fmt.Fprintf(w, "%s  %-30s %2d/%-2d %3d%% %s  %s\n",
		time.UnixMilli(a.Timestamp).Format("2006-01-02 15:04"),
		a.QuizTitle, a.Score, a.Total, a.Percentage, bar(a.Percentage), formatSeconds(a.TimeTaken))
}

func renderSummary(w io.Writer, s models.PerformanceSummary) {
	if s.Attempts == 0 {
		fmt.Fprintln(w, "No quiz attempts yet. The archive awaits your first ritual.")
		return
	}
	fmt.Fprintf(w, "Attempts: %d   Average: %d%%   Best: %d%%   Mastery: %s\n",
		s.Attempts, s.AveragePercent, s.BestPercent, s.Mastery)
	fmt.Fprintf(w, "Last %d attempts:\n", len(s.Recent))
	for _, a := range s.Recent {
		fmt.Fprintf(w, "  %3d%% %s %s\n", a.Percentage, bar(a.Percentage), a.QuizTitle)
	}
}

func renderRankings(w io.Writer, list []models.QuizAttempt) {
	for i, a := range list {
		fmt.Fprintf(w, "%2d. %-20s %2d/%-2d in %s\n", i+1, a.UserName, a.Score, a.Total, formatSeconds(a.TimeTaken))
	}
}

func renderUsers(w io.Writer, list []models.User) {
	for i, u := range list {
		fmt.Fprintf(w, "%2d. %s <%s>  id: %s\n", i+1, u.Name, u.Email, u.ID)
	}
}
