package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Upload(ctx context.Context, args []string) error
	Paste(ctx context.Context, args []string) error
	Sources(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	NewSession(ctx context.Context) error

	Guide(ctx context.Context) error
	Show(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Explain(ctx context.Context, args []string) error
	Chat(ctx context.Context) error

	Quiz(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Join(ctx context.Context, args []string) error
	Rankings(ctx context.Context, args []string) error
	History(ctx context.Context) error

	Friends(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	AddFriend(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: signup, login, exit"
	helpLoggedIn  = `Available commands:
  sources: upload <category> <path>, paste <category>, sources, remove <category> <n>, new
  study:   guide, show, done <n>, explain [n...], chat
  quiz:    quiz [questions], share [questions], join <session-id>,
           rankings <session-id>, history
  people:  friends, users [query], addfriend <n|id>
  account: whoami, logout, exit
categories: syllabus, notes, textbook`
)

// runREPL reads a line from reader, parses the first token as the command
// and dispatches to methods on 'a'. Unknown commands are reported back to
// the user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by handlers are printed and the loop continues; no
// error is fatal.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("oracle%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(describeError(err))
		}
	}
}

var errUnknownCommand = errors.New("unknown command")
var errLoginRequired = errors.New("please signup or login first")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if _, known := loggedInCommands[cmd]; known {
			return errLoginRequired
		}
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "upload":
		return a.Upload(ctx, args)
	case "paste":
		return a.Paste(ctx, args)
	case "sources", "ls":
		return a.Sources(ctx)
	case "remove", "rm":
		return a.Remove(ctx, args)
	case "new":
		return a.NewSession(ctx)
	case "guide":
		return a.Guide(ctx)
	case "show":
		return a.Show(ctx)
	case "done":
		return a.Done(ctx, args)
	case "explain":
		return a.Explain(ctx, args)
	case "chat":
		return a.Chat(ctx)
	case "quiz":
		return a.Quiz(ctx, args)
	case "share":
		return a.Share(ctx, args)
	case "join":
		return a.Join(ctx, args)
	case "rankings":
		return a.Rankings(ctx, args)
	case "history":
		return a.History(ctx)
	case "friends":
		return a.Friends(ctx)
	case "users":
		return a.Users(ctx, args)
	case "addfriend":
		return a.AddFriend(ctx, args)
	}
	return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
}

var loggedInCommands = map[string]struct{}{
	"logout": {}, "whoami": {}, "upload": {}, "paste": {}, "sources": {}, "ls": {},
	"remove": {}, "rm": {}, "new": {}, "guide": {}, "show": {}, "done": {},
	"explain": {}, "chat": {}, "quiz": {}, "share": {}, "join": {}, "rankings": {},
	"history": {}, "friends": {}, "users": {}, "addfriend": {},
}

// describeError turns an error into the line shown to the user: gateway
// failures as a banner with a retry hint, login failures as a form message,
// everything else next to the command.
func describeError(err error) string {
	switch {
	case errors.Is(err, gateway.ErrGateway):
		return fmt.Sprintf("!! The Oracle could not answer: %v. Please try again.", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Login failed: invalid email or password."
	case errors.Is(err, errUnknownCommand):
		return strings.Replace(err.Error(), "unknown command: ", "Unknown command: ", 1) + " (type 'help')"
	default:
		return "Error: " + err.Error()
	}
}
