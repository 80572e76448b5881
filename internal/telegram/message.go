package telegram

import "github.com/Christopher22/larry/internal/domain"

// Message is the inbound chat message a command invocation runs against.
// ReplyTo carries the text of the replied-to message, if any; date commands
// fall back to it when invoked without arguments, so answering an
// availability prompt with a bare "/yes" works.
type Message struct {
	Sender  domain.User
	Text    string
	ReplyTo string
}
