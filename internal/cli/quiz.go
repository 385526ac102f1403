package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/quiz"
)

// Quiz generates a solo quiz from the current guide and runs it.
//
//	quiz [questions]
func (a *App) Quiz(ctx context.Context, args []string) error {
	q, err := a.generateQuiz(ctx, args, "")
	if err != nil {
		return err
	}
	a.playQuiz(ctx, q)
	return nil
}

// Share opens a collaborative session: the quiz is stored under a new id and
// everyone who joins that id answers the same questions and is ranked
// together.
//
//	share [questions]
func (a *App) Share(ctx context.Context, args []string) error {
	id, err := a.scores.NewCollaborativeSessionID()
	if err != nil {
		return err
	}
	q, err := a.generateQuiz(ctx, args, id)
	if err != nil {
		return err
	}
	if err := a.scores.ShareQuiz(ctx, q); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Collaborative session: %s\nOthers can join with 'join %s'.\n", id, id)
	a.playQuiz(ctx, q)
	return nil
}

// Join takes the stored quiz of a collaborative session. No sources or
// guide are needed.
//
//	join <session-id>
func (a *App) Join(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: join <session-id>")
	}
	q, err := a.scores.SharedQuiz(ctx, args[0])
	if err != nil {
		return err
	}
	a.playQuiz(ctx, q)
	return nil
}

func (a *App) generateQuiz(ctx context.Context, args []string, sessionID string) (*models.Quiz, error) {
	if a.guide == nil {
		return nil, errNoGuide
	}

	n := a.config.QuizQuestions
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid question count %q", args[0])
		}
		n = v
	}

	fmt.Fprintln(a.out, "The Oracle is preparing your trial...")
	return a.gateway.GenerateQuiz(ctx, a.workspace.Sources(), a.guide, gateway.QuizOptions{
		Questions: n,
		SessionID: sessionID,
	})
}

func (a *App) playQuiz(ctx context.Context, q *models.Quiz) {
	a.quiz = q
	attempt := a.runQuiz(ctx, q)
	renderResult(a, attempt)

	if q.SessionID != "" {
		fmt.Fprintf(a.out, "\nRankings for %s:\n", q.SessionID)
		renderRankings(a.out, a.scores.SessionRankings(ctx, q.SessionID))
	}
}

// lockedWriter serializes writes from the REPL and the quiz timer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// runQuiz asks every question in turn. The attempt is saved once, whether
// the quiz ends by the last answer, by 'q', or by the timer.
func (a *App) runQuiz(ctx context.Context, q *models.Quiz) models.QuizAttempt {
	out := &lockedWriter{w: a.out}
	sess := a.session
	saved := make(chan *models.QuizAttempt, 1)
	r := quiz.NewRunner(q, func(att models.QuizAttempt) {
		saved <- a.scores.SaveAttempt(ctx, sess, att)
	})

	var timer *quiz.Timer
	if seconds := a.config.QuizSecondsPerQuestion * len(q.Questions); seconds > 0 {
		timer = quiz.NewTimer(seconds, nil, func() {
			fmt.Fprintln(out, "\nTime is up! Press Enter to see your result.")
			r.Finish()
		})
		timer.Start(ctx)
		defer func() {
			timer.Stop()
			<-timer.Done()
		}()
	}

	fmt.Fprintf(out, "\n%s (%d questions)\n", q.Title, len(q.Questions))
	for !r.Finished() {
		question, idx := r.Current()
		remaining := 0
		if timer != nil {
			remaining = timer.Remaining()
		}
		renderQuestion(out, idx, len(q.Questions), question, remaining)

		answer, err := getSimpleText(a.reader, "Your answer (1-4, q to stop)", out)
		if err != nil || r.Finished() {
			break
		}
		if strings.EqualFold(answer, "q") {
			break
		}
		choice, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(out, "Please answer with a number from 1 to 4.")
			continue
		}

		correct, err := r.Answer(choice - 1)
		if errors.Is(err, quiz.ErrInvalidOption) {
			fmt.Fprintln(out, "Please answer with a number from 1 to 4.")
			continue
		}
		if err != nil {
			break
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Not quite. The answer was %d) %s\n",
				question.CorrectOptionIndex+1, question.Options[question.CorrectOptionIndex])
		}
		if question.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", question.Explanation)
		}

		if _, err := r.Next(); err != nil {
			break
		}
	}

	if timer != nil {
		timer.Stop()
	}
	attempt := r.Finish()
	if stored := <-saved; stored != nil {
		return *stored
	}
	a.log.Warn(ctx, "quiz attempt was not stored", "quiz", q.Title)
	return attempt
}

func renderResult(a *App, att models.QuizAttempt) {
	fmt.Fprintf(a.out, "\nResult: %d/%d (%d%%) %s in %s\n",
		att.Score, att.Total, att.Percentage, bar(att.Percentage), formatSeconds(att.TimeTaken))
	switch models.MasteryFor(att.Percentage) {
	case models.MasteryIlluminated:
		fmt.Fprintln(a.out, "The path is illuminated.")
	case models.MasteryFoundation:
		fmt.Fprintln(a.out, "A solid foundation. Review the concepts you missed.")
	default:
		fmt.Fprintln(a.out, "The knowledge is still veiled. Study the guide and try again.")
	}
}

// Rankings lists the attempts of a collaborative session, best first.
//
//	rankings <session-id>
func (a *App) Rankings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: rankings <session-id>")
	}
	list := a.scores.SessionRankings(ctx, args[0])
	if len(list) == 0 {
		fmt.Fprintf(a.out, "No attempts recorded for session %s.\n", args[0])
		return nil
	}
	renderRankings(a.out, list)
	return nil
}
