package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/examoracle/internal/filex"
	"github.com/dmitrijs2005/examoracle/internal/models"
)

// Upload reads a local file into the given category.
//
//	upload <category> <path>
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: upload <syllabus|notes|textbook> <path>")
	}
	category, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}

	up, err := filex.ReadUpload(args[1], filex.MaxUploadBytes)
	if err != nil {
		return err
	}
	src, err := a.workspace.AddFile(category, up.Name, up.MimeType, up.Data)
	if err != nil {
		return err
	}

	a.log.Debug(ctx, "source added", "category", category, "kind", src.Kind, "bytes", len(up.Data))
	fmt.Fprintf(a.out, "Added %s to %s (%s).\n", src.FileName, category.Title(), src.MimeType)
	a.printReadiness()
	return nil
}

// Paste reads multi-line text into the given category.
//
//	paste <category>
func (a *App) Paste(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: paste <syllabus|notes|textbook>")
	}
	category, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}

	text, err := getMultiline(a.reader, "Paste the "+category.Title()+" text", a.out)
	if err != nil {
		return err
	}
	if _, err := a.workspace.AddText(category, "", text); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added pasted text to %s.\n", category.Title())
	a.printReadiness()
	return nil
}

func (a *App) Sources(ctx context.Context) error {
	for _, c := range models.Categories {
		list := a.workspace.ByCategory(c)
		fmt.Fprintf(a.out, "%s:\n", c.Title())
		if len(list) == 0 {
			fmt.Fprintln(a.out, "  (empty)")
		}
		for i, s := range list {
			fmt.Fprintf(a.out, "  %d. %s [%s, %s]\n", i+1, s.FileName, s.Kind, s.MimeType)
		}
	}
	a.printReadiness()
	return nil
}

// Remove drops the n-th source of a category.
//
//	remove <category> <n>
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: remove <syllabus|notes|textbook> <n>")
	}
	category, err := models.ParseCategory(args[0])
	if err != nil {
		return err
	}
	list := a.workspace.ByCategory(category)
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(list) {
		return fmt.Errorf("no source %s in %s", args[1], category.Title())
	}

	a.workspace.Remove(category, list[n-1].ID)
	fmt.Fprintf(a.out, "Removed %s from %s.\n", list[n-1].FileName, category.Title())
	return nil
}

// NewSession discards sources, guide, quiz and chat.
func (a *App) NewSession(ctx context.Context) error {
	a.resetStudy()
	fmt.Fprintln(a.out, "Started a new study session.")
	return nil
}

func (a *App) printReadiness() {
	filled := a.workspace.FilledCategories()
	if a.workspace.Ready() {
		fmt.Fprintf(a.out, "%d of 3 categories filled. Type 'guide' to consult the Oracle.\n", filled)
		return
	}
	fmt.Fprintf(a.out, "%d of 3 categories filled. At least 2 are needed to find the overlap.\n", filled)
}
