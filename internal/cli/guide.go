package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/workspace"
)

var errNoGuide = errors.New("no study guide yet; type 'guide' first")

// Guide sends the workspace sources to the model and shows the result.
func (a *App) Guide(ctx context.Context) error {
	if !a.workspace.Ready() {
		return fmt.Errorf("upload sources in at least %d categories first", workspace.MinReadyCategories)
	}

	fmt.Fprintln(a.out, "The Oracle is reading your scrolls...")
	guide, err := a.gateway.GenerateStudyGuide(ctx, a.workspace.Sources())
	if err != nil {
		return err
	}

	a.guide = guide
	a.quiz = nil
	a.log.Info(ctx, "study guide ready", "concepts", len(guide.Concepts))
	renderGuide(a.out, guide)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if a.guide == nil {
		return errNoGuide
	}
	renderGuide(a.out, a.guide)
	return nil
}

// Done toggles the studied mark of concept n.
func (a *App) Done(ctx context.Context, args []string) error {
	if a.guide == nil {
		return errNoGuide
	}
	if len(args) == 0 {
		return errors.New("usage: done <n>")
	}
	c, err := a.concept(args[0])
	if err != nil {
		return err
	}

	a.guide.ToggleConcept(c.Name)
	state := "not studied"
	if a.guide.IsCompleted(c.Name) {
		state = "studied"
	}
	fmt.Fprintf(a.out, "%s marked %s. Progress: %d%%\n", c.Name, state, a.guide.Progress())
	return nil
}

// Explain asks for plain-language explanations of the given concepts, or of
// all concepts when none are named.
func (a *App) Explain(ctx context.Context, args []string) error {
	if a.guide == nil {
		return errNoGuide
	}

	concepts := a.guide.Concepts
	if len(args) > 0 {
		concepts = make([]models.Concept, 0, len(args))
		for _, arg := range args {
			c, err := a.concept(arg)
			if err != nil {
				return err
			}
			concepts = append(concepts, c)
		}
	}

	fmt.Fprintln(a.out, "The Oracle is finding simpler words...")
	out, err := a.gateway.ExplainSimply(ctx, concepts)
	if err != nil {
		return err
	}
	for _, e := range out {
		renderExplanation(a.out, e)
	}
	return nil
}

// concept resolves a 1-based position in the current guide.
func (a *App) concept(arg string) (models.Concept, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.guide.Concepts) {
		return models.Concept{}, fmt.Errorf("no concept %s (1-%d)", arg, len(a.guide.Concepts))
	}
	return a.guide.Concepts[n-1], nil
}
