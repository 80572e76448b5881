package telegram

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/store"
)

// Env carries the collaborators a command may touch during execution.
type Env struct {
	Repo     store.Repo
	Sender   Sender
	Log      *zap.Logger
	Password string
}

// Command is a named operation a user can invoke from chat.
type Command interface {
	// Name returns the command word. A leading slash marks the command as
	// public, i.e. documented towards the messaging platform.
	Name() string
	Description() string
	Execute(ctx context.Context, env *Env, msg Message, args []string) Result
}

// IsPublic reports whether the command is documented in public, indicated by
// a leading '/'.
func IsPublic(c Command) bool {
	return strings.HasPrefix(c.Name(), "/")
}

// Dispatch tokenizes the message text at whitespace and runs every command it
// contains. A token matching a command name (case-insensitively) starts an
// invocation; the following tokens up to the next command name become its
// arguments in original case. Tokens before the first command name are
// discarded. Results are returned in encounter order.
func Dispatch(ctx context.Context, env *Env, msg Message, commands []Command) []Result {
	var (
		results []Result
		current Command
		args    []string
	)

	for _, token := range strings.Fields(msg.Text) {
		if next := matchCommand(token, commands); next != nil {
			if current != nil {
				results = append(results, current.Execute(ctx, env, msg, args))
			}
			current = next
			args = nil
			continue
		}
		args = append(args, token)
	}

	if current != nil {
		results = append(results, current.Execute(ctx, env, msg, args))
	}
	return results
}

func matchCommand(token string, commands []Command) Command {
	for _, c := range commands {
		if strings.EqualFold(token, c.Name()) {
			return c
		}
	}
	return nil
}
