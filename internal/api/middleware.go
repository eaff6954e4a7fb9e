package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// requireAPIKey guards the regions data behind a bearer key. Rejections use
// the same JSON error body as the handlers.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	key := []byte(s.cfg.APIKey)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, _ := strings.Cut(r.Header.Get("Authorization"), " ")
		if !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			s.rejectKey(w, r, "missing authorization")
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), key) != 1 {
			s.rejectKey(w, r, "invalid api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rejectKey(w http.ResponseWriter, r *http.Request, reason string) {
	s.log.Warn("regions request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	w.Header().Set("WWW-Authenticate", `Bearer realm="cascade"`)
	writeError(w, http.StatusUnauthorized, reason)
}

// requestLogger logs each request once it completes. Server errors log at
// error level and client errors at warn.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			log.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", status,
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
