package api

import (
	"net/http"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/Christopher22/larry/internal/store"
)

// userPayload is the serialized form of a user.
type userPayload struct {
	Name string `json:"name"`
	Chat int64  `json:"chat"`
}

// usersAPI exposes registered users read-only.
type usersAPI struct {
	repo store.Repo
}

func (*usersAPI) id() string { return "users" }

func (a *usersAPI) get(r *http.Request, entity *int64) response {
	ctx := r.Context()

	if entity == nil {
		users, err := a.repo.LoadAllUsers(ctx)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "Unable to load users")
		}
		payload := make(map[string]userPayload, len(users))
		for _, u := range users {
			payload[strconv.FormatInt(u.ID, 10)] = userPayload{Name: u.Name, Chat: u.ChatID}
		}
		return response{status: http.StatusOK, payload: payload}
	}

	users, err := a.repo.LoadUsers(ctx, *entity)
	if err != nil {
		return errorResponse(http.StatusBadRequest, "Unable to load users")
	}
	if len(users) != 1 {
		return response{status: http.StatusNotFound}
	}
	return response{
		status:  http.StatusOK,
		payload: userPayload{Name: users[0].Name, Chat: users[0].ChatID},
	}
}

func (*usersAPI) post(_ *http.Request, _ int64, _ string, _ *fastjson.Value) response {
	return errorResponse(http.StatusNotImplemented, "Updating users is not supported")
}
