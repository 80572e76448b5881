package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/Christopher22/larry/internal/domain"
)

// runWithDate is the shared template of the date-scoped commands: the date
// comes from the single argument, or, when the command was sent without
// arguments as a reply, from the text of the replied-to message. On success
// the command-specific handler runs with the resolved day.
func runWithDate(
	ctx context.Context,
	env *Env,
	name string,
	msg Message,
	args []string,
	handler func(ctx context.Context, env *Env, date time.Time) Result,
) Result {
	var (
		date time.Time
		err  error
	)
	switch {
	case len(args) == 1:
		date, err = domain.ParseDate(args[0])
	case len(args) == 0 && msg.ReplyTo != "":
		date, err = domain.ParseDate(msg.ReplyTo)
	default:
		err = domain.ErrInvalidDate
	}
	if err != nil {
		return Result{Message: fmt.Sprintf(invalidDateText, name)}
	}
	return handler(ctx, env, date)
}
