// Package quiz runs a generated quiz: question progression, scoring and the
// countdown that finishes the quiz when time runs out.
package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

var (
	ErrFinished        = errors.New("quiz already finished")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("answer the current question first")
	ErrInvalidOption   = errors.New("no such option")
)

// SaveFunc receives the finished attempt. The runner calls it exactly once.
type SaveFunc func(a models.QuizAttempt)

// Runner walks through a quiz. It is safe for concurrent use, so a Timer can
// finish it from its own goroutine.
type Runner struct {
	mu       sync.Mutex
	quiz     *models.Quiz
	index    int
	score    int
	answered bool
	finished bool
	started  time.Time
	elapsed  time.Duration
	save     SaveFunc
	now      func() time.Time
}

func NewRunner(q *models.Quiz, save SaveFunc) *Runner {
	r := &Runner{quiz: q, save: save, now: time.Now}
	r.started = r.now()
	return r
}

// Current returns the question being asked and its zero-based position.
func (r *Runner) Current() (models.QuizQuestion, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index >= len(r.quiz.Questions) {
		return models.QuizQuestion{}, r.index
	}
	return r.quiz.Questions[r.index], r.index
}

// Answer records the choice for the current question.
func (r *Runner) Answer(option int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return false, ErrFinished
	}
	if r.answered {
		return false, ErrAlreadyAnswered
	}
	if r.index >= len(r.quiz.Questions) {
		return false, ErrFinished
	}
	q := r.quiz.Questions[r.index]
	if option < 0 || option >= len(q.Options) {
		return false, ErrInvalidOption
	}

	r.answered = true
	correct := option == q.CorrectOptionIndex
	if correct {
		r.score++
	}
	return correct, nil
}

// Next moves past an answered question. After the last one it finishes the
// quiz and reports done.
func (r *Runner) Next() (done bool, err error) {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return true, ErrFinished
	}
	if !r.answered {
		r.mu.Unlock()
		return false, ErrNotAnswered
	}
	if r.index+1 < len(r.quiz.Questions) {
		r.index++
		r.answered = false
		r.mu.Unlock()
		return false, nil
	}
	r.mu.Unlock()

	r.Finish()
	return true, nil
}

// Finish ends the quiz and saves the attempt. Later calls return the same
// attempt without saving again.
func (r *Runner) Finish() models.QuizAttempt {
	r.mu.Lock()
	if r.finished {
		a := r.attempt()
		r.mu.Unlock()
		return a
	}
	r.finished = true
	r.elapsed = r.now().Sub(r.started)
	a := r.attempt()
	save := r.save
	r.mu.Unlock()

	if save != nil {
		save(a)
	}
	return a
}

// attempt is called with mu held.
func (r *Runner) attempt() models.QuizAttempt {
	total := len(r.quiz.Questions)
	return models.QuizAttempt{
		QuizTitle:  r.quiz.Title,
		Score:      r.score,
		Total:      total,
		Percentage: models.Percentage(r.score, total),
		TimeTaken:  int(r.elapsed.Round(time.Second) / time.Second),
		SessionID:  r.quiz.SessionID,
	}
}

func (r *Runner) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

func (r *Runner) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}
