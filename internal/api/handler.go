package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/store"
)

// response is an API outcome before it is written to the transport.
type response struct {
	status  int
	payload any
}

func errorResponse(status int, message string) response {
	return response{status: status, payload: map[string]string{"error": message}}
}

// resource is one addressable API: a read handler and an attribute-update
// handler. The handler routes by the "api" query parameter.
type resource interface {
	// id returns the entry point name used to address the resource.
	id() string
	// get answers a read; entity is nil when the whole collection is queried.
	get(r *http.Request, entity *int64) response
	// post updates one attribute of the entity to a JSON-decoded value.
	post(r *http.Request, entity int64, key string, value *fastjson.Value) response
}

// Handler serves the authenticated read/write API.
type Handler struct {
	log       *zap.Logger
	password  string
	resources []resource
	parsers   fastjson.ParserPool
}

// NewHandler creates the API handler over the given store.
func NewHandler(repo store.Repo, log *zap.Logger, password string) *Handler {
	return &Handler{
		log:      log,
		password: password,
		resources: []resource{
			&usersAPI{repo: repo},
			&availabilitiesAPI{repo: repo},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.isAllowed(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="Please enter a valid API key."`)
		writeResponse(w, h.log, response{status: http.StatusUnauthorized})
		return
	}
	writeResponse(w, h.log, h.route(r))
}

func (h *Handler) route(r *http.Request) response {
	apiName := r.URL.Query().Get("api")
	if apiName == "" {
		return response{status: http.StatusBadRequest}
	}

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return response{status: http.StatusMethodNotAllowed}
	}

	var entity *int64
	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response{status: http.StatusBadRequest}
		}
		entity = &id
	}

	for _, res := range h.resources {
		if res.id() != apiName {
			continue
		}

		if r.Method == http.MethodGet {
			return res.get(r, entity)
		}

		// Writes address one entity and carry an attribute/value pair.
		if entity == nil {
			return response{status: http.StatusBadRequest}
		}
		key := r.PostFormValue("attribute")
		rawValue := r.PostFormValue("value")
		if key == "" || rawValue == "" {
			return response{status: http.StatusBadRequest}
		}
		parser := h.parsers.Get()
		value, err := parser.Parse(rawValue)
		if err != nil {
			h.parsers.Put(parser)
			return response{status: http.StatusBadRequest}
		}
		resp := res.post(r, *entity, key, value)
		h.parsers.Put(parser)
		return resp
	}

	return response{status: http.StatusNotFound}
}

// isAllowed checks HTTP Basic credentials; only the text after the last ':'
// of the decoded credentials is compared against the shared secret.
func (h *Handler) isAllowed(r *http.Request) bool {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return false
	}
	credentials := string(decoded)
	index := strings.LastIndex(credentials, ":")
	if index < 0 {
		return false
	}
	return credentials[index+1:] == h.password
}

func writeResponse(w http.ResponseWriter, log *zap.Logger, resp response) {
	if resp.payload == nil {
		w.WriteHeader(resp.status)
		return
	}

	body, err := json.Marshal(resp.payload)
	if err != nil {
		log.Error("payload marshalling failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	if _, err := w.Write(body); err != nil {
		log.Error("writing response failed", zap.Error(err))
	}
}
