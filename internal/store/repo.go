package store

import (
	"context"
	"time"

	"github.com/Christopher22/larry/internal/domain"
)

// Repo defines storage operations for users and meeting availabilities.
type Repo interface {
	// CreateUser inserts a new user. It fails with ErrUserExists if the id
	// is already taken; existing users are never overwritten.
	CreateUser(ctx context.Context, u domain.User) error
	// UserExists reports whether a user with the given id is registered.
	UserExists(ctx context.Context, id int64) (bool, error)
	// LoadUsers returns the users matching ids in ascending-id order.
	// Unknown ids are skipped silently.
	LoadUsers(ctx context.Context, ids ...int64) ([]domain.User, error)
	// LoadAllUsers returns every registered user in ascending-id order.
	LoadAllUsers(ctx context.Context) ([]domain.User, error)

	// SetAvailability upserts the user's answer for the meeting. An Unknown
	// attendance deletes the stored row instead.
	SetAvailability(ctx context.Context, m domain.Meeting, a domain.Availability) error
	// GetAvailability returns the stored answer for one user, Unknown if no
	// row exists.
	GetAvailability(ctx context.Context, m domain.Meeting, userID int64) (domain.Attendance, error)
	// Availabilities returns the answers for the meeting in ascending user-id
	// order. With includeUnknown, every registered user appears, Unknown for
	// those without a row; otherwise only answered users are returned.
	Availabilities(ctx context.Context, m domain.Meeting, includeUnknown bool) ([]domain.Availability, error)
	// UnknownAvailabilities returns the registered users without a stored
	// answer for the meeting, in ascending-id order.
	UnknownAvailabilities(ctx context.Context, m domain.Meeting) ([]domain.User, error)
	// LoadMeetings returns one meeting per distinct stored date at or after
	// from, oldest first.
	LoadMeetings(ctx context.Context, from time.Time) ([]domain.Meeting, error)

	Close() error
}
