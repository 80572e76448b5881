package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fastjson"

	"github.com/Christopher22/larry/internal/domain"
	"github.com/Christopher22/larry/internal/store"
)

// meetingPayload is the serialized form of one meeting.
type meetingPayload struct {
	Date           string           `json:"date"`
	Availabilities map[string]*bool `json:"availabilities"`
}

// availabilitiesAPI exposes meetings and allows updating a single user's
// answer.
type availabilitiesAPI struct {
	repo store.Repo
}

func (*availabilitiesAPI) id() string { return "availabilities" }

func (a *availabilitiesAPI) get(r *http.Request, entity *int64) response {
	ctx := r.Context()

	if entity != nil {
		meeting := domain.MeetingFromTimestamp(*entity)
		payload, err := a.serializeMeeting(r, meeting)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "Unable to load availabilities")
		}
		return response{status: http.StatusOK, payload: payload}
	}

	// Meetings older than one day are excluded unless "first" overrides it.
	first := domain.NewMeeting(time.Now().AddDate(0, 0, -1)).Date
	if raw := r.URL.Query().Get("first"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "First valid date is not a UNIX timestamp")
		}
		first = domain.MeetingFromTimestamp(ts).Date
	}

	meetings, err := a.repo.LoadMeetings(ctx, first)
	if err != nil {
		return errorResponse(http.StatusBadRequest, "Unable to load meetings")
	}

	payload := make(map[string]meetingPayload, len(meetings))
	for _, meeting := range meetings {
		serialized, err := a.serializeMeeting(r, meeting)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "Unable to load availabilities")
		}
		payload[strconv.FormatInt(meeting.Key(), 10)] = serialized
	}
	return response{status: http.StatusOK, payload: payload}
}

func (a *availabilitiesAPI) post(r *http.Request, entity int64, key string, value *fastjson.Value) response {
	var attendance domain.Attendance
	switch value.Type() {
	case fastjson.TypeTrue:
		attendance = domain.Attending
	case fastjson.TypeFalse:
		attendance = domain.Declined
	case fastjson.TypeNull:
		attendance = domain.Unknown
	default:
		return errorResponse(http.StatusBadRequest, "Invalid availability")
	}

	userID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return errorResponse(http.StatusBadRequest, "Invalid user id")
	}

	ctx := r.Context()
	users, err := a.repo.LoadUsers(ctx, userID)
	if err != nil || len(users) == 0 {
		return errorResponse(http.StatusBadRequest, "User not found")
	}

	meeting := domain.MeetingFromTimestamp(entity)
	err = a.repo.SetAvailability(ctx, meeting, domain.Availability{
		User:       users[0],
		Attendance: attendance,
	})
	if err != nil {
		return errorResponse(http.StatusBadRequest, "Unable to set availability")
	}
	return response{status: http.StatusOK}
}

func (a *availabilitiesAPI) serializeMeeting(r *http.Request, meeting domain.Meeting) (meetingPayload, error) {
	availabilities, err := a.repo.Availabilities(r.Context(), meeting, true)
	if err != nil {
		return meetingPayload{}, err
	}

	serialized := make(map[string]*bool, len(availabilities))
	for _, av := range availabilities {
		serialized[strconv.FormatInt(av.User.ID, 10)] = av.Attendance.Bool()
	}
	return meetingPayload{
		Date:           meeting.Date.Format(time.RFC3339),
		Availabilities: serialized,
	}, nil
}
