package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/domain"
	"github.com/Christopher22/larry/internal/store"
)

// Yes records that the sender will attend a meeting.
type Yes struct{}

func (Yes) Name() string { return "/yes" }

func (Yes) Description() string {
	return "Indicate that you will be present at a specific meeting. Example: /yes 11.11.2020"
}

func (c Yes) Execute(ctx context.Context, env *Env, msg Message, args []string) Result {
	return runWithDate(ctx, env, c.Name(), msg, args, func(ctx context.Context, env *Env, date time.Time) Result {
		meeting := domain.NewMeeting(date)
		err := env.Repo.SetAvailability(ctx, meeting, domain.Availability{
			User:       msg.Sender,
			Attendance: domain.Attending,
		})
		if err != nil {
			env.Log.Error("set availability failed", zap.Error(err), zap.Int64("user", msg.Sender.ID))
			return Result{Message: storageErrorText}
		}
		return Result{
			Message:    fmt.Sprintf(yesConfirmText, meeting.Date.Format(domain.DateFormat)),
			Successful: true,
		}
	})
}

// No records that the sender will be absent. When the sender withdraws a
// previous "yes", all other registered users are notified.
type No struct{}

func (No) Name() string { return "/no" }

func (No) Description() string {
	return "Indicate that you will be absent at a specific meeting. Example: /no 11.11.2020"
}

func (c No) Execute(ctx context.Context, env *Env, msg Message, args []string) Result {
	return runWithDate(ctx, env, c.Name(), msg, args, func(ctx context.Context, env *Env, date time.Time) Result {
		meeting := domain.NewMeeting(date)

		previous, err := env.Repo.GetAvailability(ctx, meeting, msg.Sender.ID)
		if err != nil {
			env.Log.Error("load availability failed", zap.Error(err), zap.Int64("user", msg.Sender.ID))
			return Result{Message: storageErrorText}
		}

		err = env.Repo.SetAvailability(ctx, meeting, domain.Availability{
			User:       msg.Sender,
			Attendance: domain.Declined,
		})
		if err != nil {
			env.Log.Error("set availability failed", zap.Error(err), zap.Int64("user", msg.Sender.ID))
			return Result{Message: storageErrorText}
		}

		// Only a genuine withdrawal is broadcast; a fresh "no" stays quiet.
		if previous == domain.Attending {
			notifyWithdrawal(ctx, env, msg.Sender, meeting)
		}

		return Result{
			Message:    fmt.Sprintf(noConfirmText, meeting.Date.Format(domain.DateFormat)),
			Successful: true,
		}
	})
}

// notifyWithdrawal messages every registered user except the sender. Delivery
// failures are logged and never surfaced to the sender.
func notifyWithdrawal(ctx context.Context, env *Env, sender domain.User, meeting domain.Meeting) {
	users, err := env.Repo.LoadAllUsers(ctx)
	if err != nil {
		env.Log.Error("load users for withdrawal notice failed", zap.Error(err))
		return
	}

	text := fmt.Sprintf(withdrawalText, sender.Name, meeting.Date.Format(domain.DateFormat))
	for _, u := range users {
		if u.ID == sender.ID {
			continue
		}
		if err := env.Sender.Send(u, text, false); err != nil {
			env.Log.Warn("withdrawal notice failed", zap.Error(err), zap.Int64("user", u.ID))
		}
	}
}

// Summary renders who answered what for a meeting.
type Summary struct{}

func (Summary) Name() string { return "/summary" }

func (Summary) Description() string {
	return "Shows the availability at a specific date."
}

func (c Summary) Execute(ctx context.Context, env *Env, msg Message, args []string) Result {
	return runWithDate(ctx, env, c.Name(), msg, args, func(ctx context.Context, env *Env, date time.Time) Result {
		meeting := domain.NewMeeting(date)

		known, err := env.Repo.Availabilities(ctx, meeting, false)
		if err != nil {
			env.Log.Error("load availabilities failed", zap.Error(err))
			return Result{Message: storageErrorText}
		}
		if len(known) == 0 {
			return Result{Message: nobodyText, Successful: true}
		}

		all, err := env.Repo.Availabilities(ctx, meeting, true)
		if err != nil {
			env.Log.Error("load availabilities failed", zap.Error(err))
			return Result{Message: storageErrorText}
		}

		lines := make([]string, 0, len(all)+1)
		lines = append(lines, fmt.Sprintf(summaryHeaderText, meeting.Date.Format(domain.DateFormat)))
		for _, a := range all {
			lines = append(lines, a.User.Name+"\t\t"+glyph(a.Attendance))
		}
		return Result{Message: strings.Join(lines, "\n"), Successful: true}
	})
}

func glyph(a domain.Attendance) string {
	switch a {
	case domain.Attending:
		return glyphAttending
	case domain.Declined:
		return glyphDeclined
	default:
		return glyphUnknown
	}
}

// Ask prompts every user without an answer for the meeting.
type Ask struct{}

func (Ask) Name() string { return "/ask" }

func (Ask) Description() string {
	return "Ask all the users without a response regarding their availability at a specific date."
}

func (c Ask) Execute(ctx context.Context, env *Env, msg Message, args []string) Result {
	return runWithDate(ctx, env, c.Name(), msg, args, func(ctx context.Context, env *Env, date time.Time) Result {
		meeting := domain.NewMeeting(date)

		outstanding, err := env.Repo.UnknownAvailabilities(ctx, meeting)
		if err != nil {
			env.Log.Error("load unknown availabilities failed", zap.Error(err))
			return Result{Message: storageErrorText}
		}

		dateText := meeting.Date.Format(domain.DateFormat)
		names := make([]string, 0, len(outstanding))
		for _, u := range outstanding {
			question := fmt.Sprintf(askQuestionText, u.Name, msg.Sender.Name, dateText)
			if err := env.Sender.Send(u, question, true); err != nil {
				env.Log.Warn("availability prompt failed", zap.Error(err), zap.Int64("user", u.ID))
			}
			names = append(names, "- "+u.Name)
		}

		// The confirmation succeeds regardless of individual deliveries.
		return Result{
			Message:    fmt.Sprintf(askConfirmationText, strings.Join(names, "\n"), dateText),
			Successful: true,
		}
	})
}

// Start registers the sender, guarded by a shared secret. A wrong or missing
// password is rejected without any reply so probing cannot confirm the bot.
type Start struct{}

func (Start) Name() string { return "/start" }

func (Start) Description() string {
	return "Starts a new communication with the bot."
}

func (c Start) Execute(ctx context.Context, env *Env, msg Message, args []string) Result {
	if len(args) != 1 || args[0] != env.Password {
		return Result{}
	}

	exists, err := env.Repo.UserExists(ctx, msg.Sender.ID)
	if err != nil {
		env.Log.Error("user lookup failed", zap.Error(err), zap.Int64("user", msg.Sender.ID))
		return Result{Message: registerFailText}
	}
	if exists {
		return Result{Message: knownAlreadyText, Successful: true}
	}

	if err := env.Repo.CreateUser(ctx, msg.Sender); err != nil && !errors.Is(err, store.ErrUserExists) {
		env.Log.Error("user creation failed", zap.Error(err), zap.Int64("user", msg.Sender.ID))
		return Result{Message: registerFailText}
	}
	return Result{
		Message:    fmt.Sprintf(welcomeText, msg.Sender.Name),
		Successful: true,
	}
}
