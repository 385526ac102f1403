package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// History prints the performance summary and every stored attempt,
// newest first.
func (a *App) History(ctx context.Context) error {
	uid := a.session.UserID()
	renderSummary(a.out, a.scores.Summary(ctx, uid))

	list := a.scores.Attempts(ctx, uid)
	if len(list) == 0 {
		return nil
	}
	slices.Reverse(list)
	fmt.Fprintln(a.out, "\nHistory:")
	for _, att := range list {
		renderAttempt(a.out, att)
	}
	return nil
}

func (a *App) Friends(ctx context.Context) error {
	list, err := a.identity.Friends(ctx, a.session)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No friends yet. Find people with 'users [query]'.")
		return nil
	}
	a.lastUsers = list
	renderUsers(a.out, list)
	return nil
}

// Users searches people by name or email. The listing can be referenced by
// number in addfriend.
//
//	users [query]
func (a *App) Users(ctx context.Context, args []string) error {
	list, err := a.identity.SearchUsers(ctx, a.session, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.lastUsers = list
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No matching users.")
		return nil
	}
	renderUsers(a.out, list)
	return nil
}

// AddFriend befriends a user by position in the last listing or by id.
//
//	addfriend <n|id>
func (a *App) AddFriend(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: addfriend <n|id>")
	}

	id := args[0]
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(a.lastUsers) {
		id = a.lastUsers[n-1].ID
	}

	sess, err := a.identity.AddFriend(ctx, a.session, id)
	if err != nil {
		return err
	}
	a.session = sess
	fmt.Fprintf(a.out, "Friend added. You now have %d friends.\n", len(sess.User.Friends))
	return nil
}
