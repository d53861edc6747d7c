package middlewares

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.status = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

// SentryAlertMiddleware raises a Sentry event whenever a handler answers
// with a server error. Runs behind sentryhttp, which puts the hub on the
// request context.
func SentryAlertMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= http.StatusInternalServerError {
			hub := sentry.GetHubFromContext(r.Context())
			if hub != nil {
				hub.CaptureMessage(fmt.Sprintf("%d on %s %s", rec.status, r.Method, r.URL.Path))
			}
		}
	})
}
