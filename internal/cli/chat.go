package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/models"
)

const (
	silentReply = "I'm sorry, the Oracle is momentarily silent."
	lostReply   = "Forgive me, my connection to the archive was lost."
)

// Chat holds a conversation about the uploaded sources until an empty line
// or /end. The history lives until the study session is reset.
func (a *App) Chat(ctx context.Context) error {
	sources := a.workspace.Sources()
	if len(sources) == 0 {
		return errors.New("upload at least one source to chat about")
	}

	fmt.Fprintln(a.out, "Ask the Oracle anything about your sources. Empty line or /end to leave.")
	for {
		msg, err := getSimpleText(a.reader, "You", a.out)
		if err != nil || msg == "" || msg == "/end" {
			return nil
		}

		reply, err := a.gateway.Chat(ctx, sources, a.chat, msg)
		switch {
		case errors.Is(err, gateway.ErrEmptyResponse):
			reply = silentReply
		case err != nil:
			a.log.Warn(ctx, "chat failed", "error", err)
			reply = lostReply
		default:
			// fallbacks are shown only, never sent back as model turns
			a.chat = append(a.chat,
				models.ChatMessage{Role: models.RoleUser, Text: msg},
				models.ChatMessage{Role: models.RoleModel, Text: reply},
			)
		}
		fmt.Fprintf(a.out, "Oracle: %s\n", reply)
	}
}
