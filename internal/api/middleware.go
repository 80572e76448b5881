package api

import (
	"net/http"

	"github.com/rs/xid"
	"go.uber.org/zap"
)

// logRequests tags each request with a short id and logs it before handing
// over to the next handler.
func logRequests(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("incoming http request",
			zap.String("id", xid.New().String()),
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.String("ip", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}
