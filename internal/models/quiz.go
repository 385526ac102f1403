package models

import (
	"fmt"
	"math"
)

// Difficulty of a quiz question.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyModerate  Difficulty = "moderate"
	DifficultyDifficult Difficulty = "difficult"
)

// OptionsPerQuestion is fixed: every question is four-way multiple choice.
const OptionsPerQuestion = 4

type QuizQuestion struct {
	Question           string     `json:"question"`
	Options            []string   `json:"options"`
	CorrectOptionIndex int        `json:"correctOptionIndex"`
	Explanation        string     `json:"explanation"`
	Difficulty         Difficulty `json:"difficulty"`
}

// Validate checks the shape of a question.
func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question %q has %d options, want %d", q.Question, len(q.Options), OptionsPerQuestion)
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return fmt.Errorf("question %q has correct option %d out of range", q.Question, q.CorrectOptionIndex)
	}
	return nil
}

type Quiz struct {
	Title         string         `json:"title"`
	Questions     []QuizQuestion `json:"questions"`
	Collaborative bool           `json:"isCollaborative,omitempty"`
	SessionID     string         `json:"sessionId,omitempty"`
}

// QuizAttempt is one finished quiz run. TimeTaken is in seconds,
// Timestamp in unix milliseconds.
type QuizAttempt struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	QuizTitle  string `json:"quizTitle"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	TimeTaken  int    `json:"timeTaken"`
	Timestamp  int64  `json:"timestamp"`
	SessionID  string `json:"sessionId,omitempty"`
}

// Percentage returns round(100 × score/total), or 0 for an empty quiz.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}
