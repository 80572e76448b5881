package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Christopher22/larry/internal/domain"
)

// Sender delivers a text to a single user. expectReply hints the platform to
// mark the message as awaiting an answer. Tests substitute an in-memory
// implementation.
type Sender interface {
	Send(user domain.User, text string, expectReply bool) error
}

// BotSender delivers messages through the Telegram Bot API.
type BotSender struct {
	bot *tgbotapi.BotAPI
}

// NewBotSender wraps a bot client as a Sender.
func NewBotSender(bot *tgbotapi.BotAPI) *BotSender {
	return &BotSender{bot: bot}
}

func (s *BotSender) Send(user domain.User, text string, expectReply bool) error {
	msg := tgbotapi.NewMessage(user.ChatID, text)
	if expectReply {
		msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
	}
	_, err := s.bot.Send(msg)
	return err
}
