package domain

// User is a registered participant. ID is the Telegram user id and is stable;
// ChatID is the chat used to reach the user.
type User struct {
	ID     int64
	Name   string
	ChatID int64
}
