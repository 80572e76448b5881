package telegram

import "github.com/Christopher22/larry/internal/domain"

// Result is the outcome of a command execution.
type Result struct {
	Message    string
	Successful bool
}

// ShouldRespond reports whether the result carries a message for the user.
// An empty message suppresses delivery, used by /start to reject silently.
func (r Result) ShouldRespond() bool {
	return r.Message != ""
}

// Send delivers the result to the user, unless it should stay silent.
func (r Result) Send(s Sender, user domain.User, expectReply bool) error {
	if !r.ShouldRespond() {
		return nil
	}
	return s.Send(user, r.Message, expectReply)
}
