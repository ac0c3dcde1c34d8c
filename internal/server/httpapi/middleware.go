package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// authenticate rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			h.fail(w, r, common.ErrUnauthorized)
			return
		}

		id, err := h.users.Authenticate(token)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// requestLogger logs one line per request with its route pattern and status.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"route", routePattern(r),
				"status", status,
				"duration", time.Since(start),
				"request_id", r.Header.Get(common.RequestIDHeaderName),
			}
			switch {
			case status >= 500:
				logger.Error(r.Context(), "http request", args...)
			case status >= 400:
				logger.Warn(r.Context(), "http request", args...)
			default:
				logger.Debug(r.Context(), "http request", args...)
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
