package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/domain"
	"github.com/Christopher22/larry/internal/store"
)

// Router turns Telegram updates into command invocations and delivers the
// results back to the sender.
type Router struct {
	env      *Env
	log      *zap.Logger
	full     []Command
	unknowns []Command
}

// NewRouter creates a router around the given collaborators. The sender is
// injectable for tests; production wiring passes a BotSender.
func NewRouter(repo store.Repo, sender Sender, log *zap.Logger, password string) *Router {
	return &Router{
		env: &Env{
			Repo:     repo,
			Sender:   sender,
			Log:      log,
			Password: password,
		},
		log: log,
		// Unregistered senders are only offered /start.
		full:     []Command{Yes{}, No{}, Start{}, Summary{}, Ask{}},
		unknowns: []Command{Start{}},
	}
}

// Commands returns the full command set, e.g. for platform registration.
func (r *Router) Commands() []Command {
	return r.full
}

// HandleUpdate processes one inbound update. Anything that is not a text
// message is ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	sender := domain.User{
		ID:     msg.From.ID,
		Name:   msg.From.FirstName,
		ChatID: msg.Chat.ID,
	}

	registered, err := r.env.Repo.UserExists(ctx, sender.ID)
	if err != nil {
		r.log.Error("sender lookup failed", zap.Error(err), zap.Int64("user", sender.ID))
		return
	}
	commands := r.full
	if !registered {
		commands = r.unknowns
	}

	inbound := Message{Sender: sender, Text: msg.Text}
	if msg.ReplyToMessage != nil {
		inbound.ReplyTo = msg.ReplyToMessage.Text
	}

	results := Dispatch(ctx, r.env, inbound, commands)
	for _, res := range results {
		if err := res.Send(r.env.Sender, sender, false); err != nil {
			r.log.Error("reply delivery failed", zap.Error(err), zap.Int64("user", sender.ID))
		}
	}
}

// RegisterCommands publishes the public commands to Telegram so clients can
// offer them as suggestions. Best effort: a failure is reported, not fatal.
func RegisterCommands(bot *tgbotapi.BotAPI, commands []Command) error {
	var public []tgbotapi.BotCommand
	for _, c := range commands {
		if !IsPublic(c) {
			continue
		}
		public = append(public, tgbotapi.BotCommand{
			Command:     strings.TrimPrefix(c.Name(), "/"),
			Description: c.Description(),
		})
	}

	_, err := bot.Request(tgbotapi.NewSetMyCommands(public...))
	return err
}
