package httpapi

import (
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/logging"
)

// basicAuth rejects requests without valid Basic credentials.
func basicAuth(a *auth.Authenticator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="workdesk"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", "credentials required")
				return
			}

			if err := a.Verify(user, pass); err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrNoCredential) {
					log.BusinessError("auth: rejected", err, "user", user)
				} else {
					log.InternalError("auth: verify failed", err)
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="workdesk"`)
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
