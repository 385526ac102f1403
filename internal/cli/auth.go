package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examoracle/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup prompts for name, email and password and creates an account. The
// new account becomes the active session.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.identity.Signup(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	a.startSession(sess.User.Name)
	a.session = sess
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.identity.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.startSession(sess.User.Name)
	a.session = sess
	return nil
}

func (a *App) startSession(name string) {
	a.resetStudy()
	fmt.Fprintf(a.out, "Welcome, %s. Upload your sources to begin.\n", name)
}

// Logout clears the stored session and discards the study material.
func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	a.resetStudy()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\nfriends: %d\n", u.Name, u.Email, u.ID, len(u.Friends))
	return nil
}
