package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/store"
)

// NewServer builds the HTTP server carrying the authenticated API at "/" and
// an unauthenticated health endpoint.
func NewServer(addr string, repo store.Repo, log *zap.Logger, password string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/", logRequests(NewHandler(repo, log, password), log))

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
