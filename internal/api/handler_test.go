package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/domain"
	"github.com/Christopher22/larry/internal/store"
)

const (
	testPassword = "gundler"
	// "christopher:gundler"
	testAuth = "Basic Y2hyaXN0b3BoZXI6Z3VuZGxlcg=="
)

func bootstrapHandler(t *testing.T) (*Handler, *store.SQLiteRepo) {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "larry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return NewHandler(repo, zap.NewNop(), testPassword), repo
}

func doGET(h *Handler, target string, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doPOST(h *Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Authorization", testAuth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func seedUsers(t *testing.T, repo *store.SQLiteRepo, names ...string) []domain.User {
	t.Helper()
	users := make([]domain.User, 0, len(names))
	for i, name := range names {
		u := domain.User{ID: int64(i + 1), Name: name, ChatID: int64(42 + i)}
		require.NoError(t, repo.CreateUser(context.Background(), u))
		users = append(users, u)
	}
	return users
}

func TestAuthentication(t *testing.T) {
	h, _ := bootstrapHandler(t)

	rr := doGET(h, "/?api=users", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")

	// "christopher:doe"
	rr = doGET(h, "/?api=users", "Basic Y2hyaXN0b3BoZXI6ZG9l")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doGET(h, "/?api=users", "Bogus "+testAuth)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// The username part is ignored, only the password counts.
	rr = doGET(h, "/?api=users", testAuth)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouting(t *testing.T) {
	h, _ := bootstrapHandler(t)

	rr := doGET(h, "/", testAuth)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doGET(h, "/?api=unknown", testAuth)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = doGET(h, "/?api=users&id=abc", testAuth)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPut, "/?api=users", nil)
	req.Header.Set("Authorization", testAuth)
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestUsersAPI(t *testing.T) {
	h, repo := bootstrapHandler(t)
	users := seedUsers(t, repo, "John Doe", "Jane Doe")

	rr := doGET(h, "/?api=users", testAuth)
	require.Equal(t, http.StatusOK, rr.Code)

	var listing map[string]struct {
		Name string `json:"name"`
		Chat int64  `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	require.Len(t, listing, 2)
	require.Equal(t, "John Doe", listing["1"].Name)
	require.Equal(t, users[1].ChatID, listing["2"].Chat)

	rr = doGET(h, "/?api=users&id=2", testAuth)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"name":"Jane Doe","chat":43}`, rr.Body.String())

	rr = doGET(h, "/?api=users&id=77", testAuth)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = doPOST(h, "/?api=users&id=1", url.Values{"attribute": {"1"}, "value": {"true"}})
	require.Equal(t, http.StatusNotImplemented, rr.Code)
}

func TestAvailabilitiesAPI_Listing(t *testing.T) {
	h, repo := bootstrapHandler(t)
	users := seedUsers(t, repo, "John Doe")
	ctx := context.Background()

	rr := doGET(h, "/?api=availabilities", testAuth)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{}`, rr.Body.String())

	old := domain.NewMeeting(time.Date(1997, time.April, 22, 0, 0, 0, 0, time.Local))
	recent := domain.NewMeeting(time.Now())
	for _, m := range []domain.Meeting{old, recent} {
		require.NoError(t, repo.SetAvailability(ctx, m, domain.Availability{
			User:       users[0],
			Attendance: domain.Attending,
		}))
	}

	// Without an override only meetings of the last day are listed.
	rr = doGET(h, "/?api=availabilities", testAuth)
	require.Equal(t, http.StatusOK, rr.Code)
	var listing map[string]struct {
		Date           string           `json:"date"`
		Availabilities map[string]*bool `json:"availabilities"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	require.Len(t, listing, 1)
	require.Contains(t, listing, strconv.FormatInt(recent.Key(), 10))

	// An explicit minimum date includes the old meeting.
	rr = doGET(h, "/?api=availabilities&first="+strconv.FormatInt(old.Key(), 10), testAuth)
	require.Equal(t, http.StatusOK, rr.Code)
	listing = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listing))
	require.Len(t, listing, 2)

	rr = doGET(h, "/?api=availabilities&first=abc", testAuth)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAvailabilitiesAPI_Detail(t *testing.T) {
	h, repo := bootstrapHandler(t)
	users := seedUsers(t, repo, "John Doe", "Jane Doe")
	ctx := context.Background()

	meeting := domain.NewMeeting(time.Date(1997, time.April, 22, 0, 0, 0, 0, time.Local))
	require.NoError(t, repo.SetAvailability(ctx, meeting, domain.Availability{
		User:       users[0],
		Attendance: domain.Declined,
	}))

	rr := doGET(h, "/?api=availabilities&id="+strconv.FormatInt(meeting.Key(), 10), testAuth)
	require.Equal(t, http.StatusOK, rr.Code)

	var payload struct {
		Date           string           `json:"date"`
		Availabilities map[string]*bool `json:"availabilities"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))

	parsed, err := time.Parse(time.RFC3339, payload.Date)
	require.NoError(t, err)
	require.True(t, parsed.Equal(meeting.Date))

	require.Len(t, payload.Availabilities, 2)
	require.NotNil(t, payload.Availabilities["1"])
	require.False(t, *payload.Availabilities["1"])
	require.Nil(t, payload.Availabilities["2"])
}

func TestAvailabilitiesAPI_Post(t *testing.T) {
	h, repo := bootstrapHandler(t)
	users := seedUsers(t, repo, "John Doe")
	ctx := context.Background()

	meeting := domain.NewMeeting(time.Date(1997, time.April, 22, 0, 0, 0, 0, time.Local))
	target := "/?api=availabilities&id=" + strconv.FormatInt(meeting.Key(), 10)

	rr := doPOST(h, target, url.Values{"attribute": {"1"}, "value": {"true"}})
	require.Equal(t, http.StatusOK, rr.Code)
	attendance, err := repo.GetAvailability(ctx, meeting, users[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.Attending, attendance)

	// null removes the stored answer.
	rr = doPOST(h, target, url.Values{"attribute": {"1"}, "value": {"null"}})
	require.Equal(t, http.StatusOK, rr.Code)
	attendance, err = repo.GetAvailability(ctx, meeting, users[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.Unknown, attendance)

	// Writes without an entity id are rejected.
	rr = doPOST(h, "/?api=availabilities", url.Values{"attribute": {"1"}, "value": {"true"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doPOST(h, target, url.Values{"attribute": {"1"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doPOST(h, target, url.Values{"attribute": {"1"}, "value": {`"yes"`}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid availability"}`, rr.Body.String())

	rr = doPOST(h, target, url.Values{"attribute": {"nonsense"}, "value": {"true"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"Invalid user id"}`, rr.Body.String())

	rr = doPOST(h, target, url.Values{"attribute": {"77"}, "value": {"false"}})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"error":"User not found"}`, rr.Body.String())
}
